package journal

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"sync"
	"time"
)

var hashPool = sync.Pool{
	New: func() interface{} {
		return sha256.New()
	},
}

// snapshotTask snapshots a modified file and diffs it against the
// previous snapshot. Executed on the journal's worker pool.
type snapshotTask struct {
	journal *Journal
	path    string
}

// Execute implements Task
func (t *snapshotTask) Execute(ctx context.Context) error {
	if err := t.journal.trackChange(ctx, t.path); err != nil {
		t.journal.logf("journal: snapshot %s: %v", t.path, err)
		return err
	}
	return nil
}

// trackChange snapshots the file at path if its content changed since the
// last snapshot and records a diff against the previous version.
func (j *Journal) trackChange(ctx context.Context, path string) error {
	content, err := readNormalized(path)
	if err != nil {
		return err
	}

	contentHash, err := hashFile(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	prevHash, prevID, prevContent, err := j.previousSnapshot(ctx, path)
	if err != nil {
		return err
	}

	if prevHash == contentHash {
		return nil
	}

	snapshotID, err := j.insertSnapshot(ctx, path, contentHash, content, info.Size())
	if err != nil {
		return err
	}

	if prevID == 0 {
		return nil
	}

	diffContent, linesAdded, linesRemoved := j.diffGen.Unified(prevContent, content)
	return j.insertDiff(ctx, path, prevID, snapshotID, diffContent, linesAdded, linesRemoved)
}

// previousSnapshot returns the latest snapshot for path, or zero values if
// none exists
func (j *Journal) previousSnapshot(ctx context.Context, path string) (string, int64, string, error) {
	query := `
		SELECT content_hash, id, content
		FROM snapshots
		WHERE path = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	var contentHash, content string
	var id int64
	err := j.conn.QueryRowContext(ctx, query, path).Scan(&contentHash, &id, &content)
	if err == sql.ErrNoRows {
		return "", 0, "", nil
	}
	if err != nil {
		return "", 0, "", err
	}

	return contentHash, id, content, nil
}

// insertSnapshot stores a new content snapshot
func (j *Journal) insertSnapshot(ctx context.Context, path, contentHash, content string, size int64) (int64, error) {
	query := `
		INSERT INTO snapshots (path, content_hash, content, size, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := j.conn.ExecContext(ctx, query, path, contentHash, content, size, time.Now().Unix())
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// insertDiff stores a diff between two snapshots
func (j *Journal) insertDiff(ctx context.Context, path string, oldID, newID int64, diffContent string, linesAdded, linesRemoved int) error {
	query := `
		INSERT INTO diffs (path, old_snapshot_id, new_snapshot_id, diff_content, lines_added, lines_removed, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := j.conn.ExecContext(ctx, query, path, oldID, newID, diffContent, linesAdded, linesRemoved, time.Now().Unix())
	return err
}

// hashFile calculates the SHA-256 of a file with line endings normalized,
// so the same edit hashes identically across platforms
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := hashPool.Get().(hash.Hash)
	defer func() {
		h.Reset()
		hashPool.Put(h)
	}()

	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(normalizeLineEndings(buf[:n]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// readNormalized reads a file with line endings normalized to \n
func readNormalized(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(normalizeLineEndings(data)), nil
}

// normalizeLineEndings rewrites \r\n and bare \r to \n
func normalizeLineEndings(data []byte) []byte {
	if len(data) == 0 {
		return data
	}

	var result []byte
	start := 0

	for i := 0; i < len(data); i++ {
		if data[i] != '\r' {
			continue
		}
		result = append(result, data[start:i]...)
		result = append(result, '\n')
		if i+1 < len(data) && data[i+1] == '\n' {
			i++
		}
		start = i + 1
	}

	if result == nil {
		return data
	}

	if start < len(data) {
		result = append(result, data[start:]...)
	}

	return result
}
