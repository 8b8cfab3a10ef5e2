package eda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmeda/internal/errors"
)

func TestDirectorSuccess(t *testing.T) {
	tbl := newTable(t,
		[]string{"F1", "F2", "F3"},
		col("Director_A", 1, 1, 0),
		col("Director_B", 0, 0, 1),
		col("Oscar_Nominated_Best_Picture", 1, 0, 1),
		col("Oscar_Nominated_Sound", 0, 1, 1),
		col("Oscar_Won_Best_Picture", 0, 0, 1),
	)

	scores, err := DirectorSuccess(tbl, DirectorOptions{TopN: 20, WinWeight: 5})
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Equal(t, DirectorScore{Name: "B", Films: 1, Nominations: 2, Wins: 1, Score: 7}, scores[0])
	assert.Equal(t, DirectorScore{Name: "A", Films: 2, Nominations: 2, Wins: 0, Score: 2}, scores[1])
	assert.Greater(t, scores[0].Score, scores[1].Score)
}

func TestDirectorSuccess_TopNThenWins(t *testing.T) {
	tbl := newTable(t,
		[]string{"F1", "F2", "F3", "F4"},
		col("Director_High_Noms", 1, 1, 1, 0),
		col("Director_One_Win", 0, 0, 0, 1),
		col("Director_Nobody", 0, 0, 0, 0),
		col("Oscar_Nominated_Editing", 1, 1, 1, 1),
		col("Oscar_Nominated_Score", 1, 1, 1, 0),
		col("Oscar_Nominated_Sound", 1, 1, 1, 0),
		col("Oscar_Won_Editing", 0, 0, 0, 1),
	)

	scores, err := DirectorSuccess(tbl, DirectorOptions{TopN: 2, WinWeight: 5})
	require.NoError(t, err)
	require.Len(t, scores, 2)

	// High Noms scores 9 and One Win 6; display order is by wins.
	assert.Equal(t, "One Win", scores[0].Name)
	assert.Equal(t, "High Noms", scores[1].Name)

	top1, err := DirectorSuccess(tbl, DirectorOptions{TopN: 1, WinWeight: 5})
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, "High Noms", top1[0].Name)
}

func TestDirectorSuccess_Errors(t *testing.T) {
	tbl := newTable(t, []string{"F1"}, col("Oscar_Nominated_Sound", 1))

	_, err := DirectorSuccess(tbl, DirectorOptions{TopN: 0})
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = DirectorSuccess(tbl, DirectorOptions{TopN: 5, WinWeight: 5})
	assert.True(t, apperrors.IsEmptySelection(err))
}
