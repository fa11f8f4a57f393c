package alumni

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	ada := Record{ID: "1", FirstName: "Ada", LastName: "Lovelace"}
	alan := Record{ID: "2", FirstName: "Alan", LastName: "Turing"}
	grace := Record{ID: "3", FirstName: "Grace", LastName: "Hopper"}
	all := []Record{ada, alan, grace}

	tests := []struct {
		name string
		term string
		want []Record
	}{
		{name: "empty term", term: "", want: all},
		{name: "substring of last name", term: "a", want: all},
		{name: "lower case", term: "turing", want: []Record{alan}},
		{name: "upper case", term: "TURING", want: []Record{alan}},
		{name: "middle of first name", term: "rac", want: []Record{grace}},
		{name: "not a prefix match", term: "ove", want: []Record{ada}},
		{name: "no match", term: "lol", want: []Record{}},
		{name: "not tokenized", term: "alan turing", want: []Record{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(all, tt.term))
		})
	}
}

func TestFilter_doesNotAlias(t *testing.T) {
	recs := []Record{{FirstName: "Ada"}, {FirstName: "Alan"}}
	filtered := Filter(recs, "")
	filtered[0].FirstName = "Bob"
	assert.Equal(t, "Ada", recs[0].FirstName)
}
