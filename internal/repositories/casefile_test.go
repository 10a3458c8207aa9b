package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/mkjarl/gumshoe/internal/models"
	"github.com/mkjarl/gumshoe/internal/repositories"
	"github.com/mkjarl/gumshoe/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestCasefileRepository_Evidence(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCasefileRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	evidence, err := repo.Evidence(ctx, "session_1")
	require.NoError(t, err)
	require.Empty(t, evidence, "fresh session has no evidence")

	first := models.Evidence{ID: "ev-1", Action: "Examine the study", Clue: "Muddy footprints", Cost: 10}
	second := models.Evidence{ID: "ev-2", Action: "Interview the butler", Clue: "It wasn't the Knife", Cost: 5}
	require.NoError(t, repo.AppendEvidence(ctx, "session_1", first))
	require.NoError(t, repo.AppendEvidence(ctx, "session_1", second))

	// Evidence from another session must not leak in.
	require.NoError(t, repo.AppendEvidence(ctx, "session_2", models.Evidence{ID: "ev-9"}))

	evidence, err = repo.Evidence(ctx, "session_1")
	require.NoError(t, err)
	require.Len(t, evidence, 2)
	// Newest first.
	require.Equal(t, second, evidence[0])
	require.Equal(t, first, evidence[1])
}

func TestCasefileRepository_Transcripts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCasefileRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	require.NoError(t, repo.AppendTranscript(ctx, "session_1", "q-1", models.InterrogationResult{
		Response:     "I was in the Library all night.",
		ResponseType: models.ResponseLie,
		Utility:      0.75,
	}))
	require.NoError(t, repo.AppendTranscript(ctx, "session_1", "q-2", models.InterrogationResult{
		Response:     "The Colonel left before midnight.",
		ResponseType: models.ResponseTruth,
		Utility:      0.5,
	}))

	transcripts, err := repo.Transcripts(ctx, "session_1")
	require.NoError(t, err)
	require.Len(t, transcripts, 2)
	require.Equal(t, "q-2", transcripts[0].QuestionID, "newest first")
	require.Equal(t, "q-1", transcripts[1].QuestionID)
	require.Equal(t, models.ResponseLie, transcripts[1].ResponseType)
	require.InDelta(t, 0.75, transcripts[1].Utility, 0.001)
}
