package repositories

import (
	"context"
	"log/slog"

	"github.com/mkjarl/gumshoe/internal/errors"
	"github.com/mkjarl/gumshoe/internal/models"
	"github.com/mkjarl/gumshoe/internal/sqlite"
)

// CasefileRepository persists what the investigation has revealed: evidence
// items and interrogation transcripts, per game session. Reads come back
// newest first to match the history list rendering.
type CasefileRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewCasefileRepository(db *sqlite.Database, logger *slog.Logger) *CasefileRepository {
	return &CasefileRepository{
		db:     db,
		logger: logger.With("source", "CasefileRepository"),
	}
}

// AppendEvidence records a revealed evidence item for the session.
func (r *CasefileRepository) AppendEvidence(ctx context.Context, sessionID string, evidence models.Evidence) error {
	stmt := `INSERT INTO evidence (session_id, evidence_id, action, clue, cost)
VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt,
		sessionID, evidence.ID, evidence.Action, evidence.Clue, evidence.Cost); err != nil {
		return errors.Wrap(err, "insert evidence", slog.String("session_id", sessionID))
	}
	return nil
}

// Evidence returns the revealed evidence for the session, newest first.
func (r *CasefileRepository) Evidence(ctx context.Context, sessionID string) ([]models.Evidence, error) {
	var evidence []models.Evidence
	stmt := `SELECT evidence_id, action, clue, cost
FROM evidence
WHERE session_id = ?
ORDER BY id DESC`
	if err := r.db.ReadOnly.SelectContext(ctx, &evidence, stmt, sessionID); err != nil {
		return nil, errors.Wrap(err, "select evidence", slog.String("session_id", sessionID))
	}
	return evidence, nil
}

// AppendTranscript records one asked question with the witness response.
func (r *CasefileRepository) AppendTranscript(
	ctx context.Context,
	sessionID string,
	questionID string,
	result models.InterrogationResult,
) error {
	stmt := `INSERT INTO transcripts (session_id, question_id, response, response_type, utility)
VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt,
		sessionID, questionID, result.Response, result.ResponseType, result.Utility); err != nil {
		return errors.Wrap(err, "insert transcript", slog.String("session_id", sessionID))
	}
	return nil
}

// Transcripts returns the interrogation log for the session, newest first.
func (r *CasefileRepository) Transcripts(ctx context.Context, sessionID string) ([]models.Transcript, error) {
	var transcripts []models.Transcript
	stmt := `SELECT id, question_id, response, response_type, utility
FROM transcripts
WHERE session_id = ?
ORDER BY id DESC`
	if err := r.db.ReadOnly.SelectContext(ctx, &transcripts, stmt, sessionID); err != nil {
		return nil, errors.Wrap(err, "select transcripts", slog.String("session_id", sessionID))
	}
	return transcripts, nil
}
