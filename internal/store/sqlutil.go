// Package store provides storage backends for StabilityPipe result records.
//
// This file contains scanning helpers shared by the SQL-backed stores.
package store

import (
	"database/sql"

	"github.com/FluxWard/StabilityPipe/internal/models"
)

// nilIfEmpty converts an empty string to nil so optional encrypted columns
// persist as NULL instead of empty strings.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// scanResult scans a user_results row into an EncryptedResultRecord.
// Optional columns may be NULL and map to empty strings.
func scanResult(rows *sql.Rows) (models.EncryptedResultRecord, error) {
	var rec models.EncryptedResultRecord
	var hexaco, teique, analysis, raw sql.NullString
	err := rows.Scan(&rec.ID, &rec.UserID,
		&rec.DassDepressionEnc, &rec.DassAnxietyEnc, &rec.DassStressEnc,
		&hexaco, &teique, &analysis, &raw,
		&rec.CompletedAt, &rec.CreatedAt)
	if err != nil {
		return models.EncryptedResultRecord{}, err
	}
	rec.HexacoScoresEnc = hexaco.String
	rec.TeiqueScoresEnc = teique.String
	rec.StabilityAnalysisEnc = analysis.String
	rec.RawResponsesEnc = raw.String
	return rec, nil
}
