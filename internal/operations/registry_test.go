package operations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSection struct {
	BaseSection
}

func newStub(id string) *stubSection {
	return &stubSection{BaseSection: NewBaseSection(id, "Stub "+id)}
}

func (s *stubSection) Execute(context.Context, *Environment) (*Outcome, error) {
	return &Outcome{}, nil
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(newStub("b")))
	require.NoError(t, r.Register(newStub("a")))

	assert.Equal(t, 2, r.Count())
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("c"))
	assert.Equal(t, []string{"b", "a"}, r.ListIDs())

	err := r.Register(newStub("a"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(newStub("")))
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newStub("a")))

	s, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Stub a", s.Name())

	_, err = r.Get("missing")
	require.Error(t, err)
	assert.Equal(t, ErrorTypeNotFound, GetErrorType(err))
}

func TestRegistry_Select(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"one", "two", "three"} {
		require.NoError(t, r.Register(newStub(id)))
	}

	tests := []struct {
		name    string
		ids     []string
		want    []string
		wantErr bool
	}{
		{name: "empty selects all", ids: nil, want: []string{"one", "two", "three"}},
		{name: "registration order kept", ids: []string{"three", "one"}, want: []string{"one", "three"}},
		{name: "duplicates collapse", ids: []string{"two", "two"}, want: []string{"two"}},
		{name: "blank ids ignored", ids: []string{" ", ""}, want: []string{"one", "two", "three"}},
		{name: "unknown id", ids: []string{"one", "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := r.Select(tt.ids...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrorTypeNotFound, GetErrorType(err))
				assert.Contains(t, err.Error(), "nope")
				return
			}
			require.NoError(t, err)
			var got []string
			for _, s := range sections {
				got = append(got, s.ID())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSectionList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseSectionList(" a, ,b "))
	assert.Nil(t, ParseSectionList("all"))
	assert.Nil(t, ParseSectionList(""))
}

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{
		SectionNominationCorrelation,
		SectionRatingScales,
		SectionAdvisoryBoxOffice,
		SectionDirectorSuccess,
		SectionSeasonalBoxOffice,
		SectionCollaborationGraph,
		SectionGenreChord,
	}, r.ListIDs())
	for _, s := range r.List() {
		assert.NotEmpty(t, s.Name(), s.ID())
	}
}
