package newsportal

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerator_Validate(t *testing.T) {
	m := NewModerator(DefaultBadWords, DefaultWarning)

	tests := []struct {
		name     string
		text     string
		rejected bool
		message  string
	}{
		{"Clean", "Новое Бла-бла", false, ""},
		{"BannedWord", fmt.Sprintf("Какой-то текст, %s, еще текст", DefaultBadWords[0]), true, DefaultWarning},
		{"SecondBannedWord", "ты " + DefaultBadWords[1], true, DefaultWarning},
		{"SubstringInsideWord", "редиская", true, DefaultWarning},
		{"CaseSensitive", "Редиска", false, ""},
		{"Empty", "", true, MsgRequired},
		{"Whitespace", "   ", true, MsgRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Validate(tt.text)
			if !tt.rejected {
				assert.NoError(t, err)
				return
			}

			ve, ok := IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, FieldText, ve.Field)
			assert.Equal(t, []string{tt.message}, ve.Messages)
		})
	}
}

func TestModerator_SubstringMatch(t *testing.T) {
	m := NewModerator([]string{"lass", ""}, "no")

	assert.Error(t, m.Validate("classic"))
	assert.NoError(t, m.Validate("clas sic"))
	assert.Equal(t, "no", m.Warning())
}

func TestAuthorize(t *testing.T) {
	comment := &Comment{ID: 1, AuthorID: 7}

	tests := []struct {
		name      string
		comment   *Comment
		principal *Principal
		want      error
	}{
		{"Anonymous", comment, nil, ErrUnauthenticated},
		{"ZeroPrincipal", comment, &Principal{}, ErrUnauthenticated},
		{"Author", comment, &Principal{ID: 7, Username: "Автор"}, nil},
		{"NotAuthor", comment, &Principal{ID: 8, Username: "Не автор"}, ErrNotFound},
		{"MissingComment", nil, &Principal{ID: 7}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.comment, tt.principal)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestNewsList_Latest(t *testing.T) {
	base := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

	var list NewsList
	for i := 0; i < 11; i++ {
		list = append(list, News{ID: i + 1, Date: base.Add(-time.Duration(i*7%11) * time.Hour)})
	}
	list = append(list, News{ID: 100, Date: base})

	latest := list.Latest(10)
	require.Len(t, latest, 10)
	assert.Equal(t, 100, latest[0].ID, "equal dates fall back to higher id first")
	assert.Equal(t, 1, latest[1].ID)
	for i := 0; i < len(latest)-1; i++ {
		assert.False(t, latest[i].Date.Before(latest[i+1].Date))
	}

	assert.Len(t, list[:3].Latest(10), 3)
	assert.Equal(t, 1, list[0].ID, "source list is not reordered")
}

func TestComments_Chronological(t *testing.T) {
	base := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
	cc := Comments{
		{ID: 3, Created: base.Add(2 * time.Hour)},
		{ID: 2, Created: base},
		{ID: 1, Created: base},
		{ID: 4, Created: base.Add(time.Hour)},
	}

	sorted := cc.Chronological()
	ids := make([]int, len(sorted))
	for i, c := range sorted {
		ids[i] = c.ID
	}
	assert.Equal(t, []int{1, 2, 4, 3}, ids)
}

func TestUser_Password(t *testing.T) {
	u := &User{ID: 1, Username: "Автор"}
	require.NoError(t, u.SetPassword("s3cret-pass"))

	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.Equal(t, &Principal{ID: 1, Username: "Автор"}, u.Principal())
}
