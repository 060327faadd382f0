package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// timestampLayout matches the millisecond UTC form used by existing backups.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FileName returns the archive name for a backup taken at t.
func FileName(t time.Time) string {
	return "prompt-vault-backup-" + strconv.FormatInt(t.UnixMilli(), 10) + ".json"
}

// Encode renders the backup as indented JSON.
func Encode(b *domain.Backup) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Decode parses a backup document. Both "categories" and "prompts" must be
// present and be arrays, and "timestamp", when present, must be a string;
// anything else is domain.ErrInvalidBackup.
func Decode(data []byte) (*domain.Backup, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}

	var b domain.Backup
	if err := decodeList(raw, "categories", &b.Categories); err != nil {
		return nil, err
	}
	if err := decodeList(raw, "prompts", &b.Prompts); err != nil {
		return nil, err
	}
	if ts, ok := raw["timestamp"]; ok {
		if err := json.Unmarshal(ts, &b.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %q must be a string", domain.ErrInvalidBackup, "timestamp")
		}
	}
	return &b, nil
}

func decodeList[T any](raw map[string]json.RawMessage, key string, dst *[]T) error {
	msg, ok := raw[key]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(msg), []byte("[")) {
		return fmt.Errorf("%w: %q must be an array", domain.ErrInvalidBackup, key)
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidBackup, key, err)
	}
	return nil
}
