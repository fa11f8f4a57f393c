package user

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfs "github.com/trezcool/alumni/fs"
)

func TestLoadCommonPasswords(t *testing.T) {
	pwds, err := loadCommonPasswords(appfs.FS)
	require.NoError(t, err)
	assert.NotEmpty(t, pwds)
	assert.IsNonDecreasing(t, pwds)
	assert.Contains(t, pwds, "p@ssw0rd")

	_, err = loadCommonPasswords(fstest.MapFS{})
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	commonPasswords, _ = loadCommonPasswords(appfs.FS)

	tests := []struct {
		name  string
		pwd   string
		attrs []string
		want  string
	}{
		{name: "too short", pwd: "Ab1!", want: pwdMinLenTag},
		{name: "whitespace", pwd: "Abcd 123!", want: pwdNoSpaceTag},
		{name: "all numeric", pwd: "1234567890", want: pwdNotAllNumTag},
		{name: "no upper", pwd: "abcd123!", want: pwdComplexityTag},
		{name: "no special", pwd: "Abcd1234", want: pwdComplexityTag},
		{name: "no digit", pwd: "Abcdefg!", want: pwdComplexityTag},
		{name: "similar to email", pwd: "Grace.Hopp3r@test", attrs: []string{"Grace", "grace.hopper@test.cd"}, want: pwdAttrSimTag},
		{name: "common", pwd: "P@ssw0rd", want: pwdNoCommonTag},
		{name: "valid", pwd: "Xk9#mQ2!vL", attrs: []string{"Grace Hopper", "grace@test.cd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkPassword(tt.pwd, tt.attrs...))
		})
	}
}
