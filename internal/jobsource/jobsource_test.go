package jobsource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	descs     []string
	err       error
	lastTitle string
	lastLimit int
}

func (f *fakeStore) DescriptionsByTitle(_ context.Context, title string, limit int) ([]string, error) {
	f.lastTitle = title
	f.lastLimit = limit
	return f.descs, f.err
}

func TestStatic_SkipsBlank(t *testing.T) {
	descs, err := Static{"python", " ", "", "aws"}.Descriptions(context.Background(), "any", "where")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "aws"}, descs)

	descs, err = Static(nil).Descriptions(context.Background(), "any", "")
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestDatabase_Descriptions(t *testing.T) {
	store := &fakeStore{descs: []string{"<ul><li>SQL</li><li>Tableau</li></ul>", "", "Plain text"}}
	src := NewDatabase(store, 0)

	descs, err := src.Descriptions(context.Background(), "Data Analyst", "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"SQL\nTableau", "Plain text"}, descs)
	assert.Equal(t, "Data Analyst", store.lastTitle)
	assert.Equal(t, DefaultDatabaseLimit, store.lastLimit)
}

func TestDatabase_Error(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewDatabase(&fakeStore{err: boom}, 5).Descriptions(context.Background(), "x", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var srcErr *Error
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "database", srcErr.Source)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  Python   and\n\n AWS ", want: "Python and\nAWS"},
		{name: "paragraphs", in: "<p>Python</p><p>AWS</p>", want: "Python\nAWS"},
		{name: "scripts removed", in: "<div>SQL<script>var x = 1;</script></div>", want: "SQL"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}
