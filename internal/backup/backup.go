// Package backup keeps rotating file copies of the local data file next to it.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for a SQLite or JSON data file
type Manager struct {
	dataPath   string
	backupDir  string
	suffix     string
	maxBackups int
	clock      clock.Clock
}

// NewManager creates a backup manager for the file at dataPath. Backups are
// written to a backups directory beside it.
func NewManager(dataPath string) *Manager {
	suffix := filepath.Ext(dataPath)
	if suffix == "" {
		suffix = constants.BackupFileSuffix
	}
	return &Manager{
		dataPath:   dataPath,
		backupDir:  filepath.Join(filepath.Dir(dataPath), constants.BackupDirName),
		suffix:     suffix,
		maxBackups: constants.MaxBackups,
		clock:      clock.Real(),
	}
}

// WithClock sets the clock used to name backups
func (m *Manager) WithClock(clk clock.Clock) *Manager {
	m.clock = clk
	return m
}

// WithMaxBackups sets the retention limit; values below 1 are ignored
func (m *Manager) WithMaxBackups(n int) *Manager {
	if n > 0 {
		m.maxBackups = n
	}
	return m
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) isSQLite() bool {
	return m.suffix != ".json"
}

// CreateBackup copies the data file and rotates old backups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation keeps the pre-restore copy from evicting the backup being restored
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		err = m.vacuumInto(backupPath)
	} else {
		err = copyFile(m.dataPath, backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to backup data file: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	logger.Debug("Backup created", "path", backupPath)
	return backupPath, nil
}

func (m *Manager) nextBackupPath() (string, error) {
	now := m.clock.Now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.suffix)
	}

	path := name(now.Format(minuteLayout))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	path = name(stamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, counter))
	}
}

// vacuumInto writes a compacted copy of the SQLite database, falling back to
// a plain copy when VACUUM INTO is unavailable
func (m *Manager) vacuumInto(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dataPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		srcDB.Close()
		return copyFile(m.dataPath, destPath)
	}
	return nil
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		timestamp, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseStamp accepts YYYYMMDD-HHMM or YYYYMMDD-HHMMSS with an optional -N counter
func parseStamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 3 && isDigits(parts[2]) {
		s = parts[0] + "-" + parts[1]
	}
	if ts, err := time.ParseInLocation(minuteLayout, s, time.Local); err == nil {
		return ts, true
	}
	if ts, err := time.ParseInLocation(secondLayout, s, time.Local); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data file with backupPath. The current file is
// backed up first; its path is returned. Requires a RestoreFile token.
func (m *Manager) RestoreBackup(backupPath string, token confirm.Token) (string, error) {
	if err := confirm.Require(token, confirm.RestoreFile); err != nil {
		return "", err
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var current string
	if _, err := os.Stat(m.dataPath); err == nil {
		current, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current data before restore: %w", err)
		}
		logger.Info("Backed up current data before restore", "path", current)
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return current, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return current, fmt.Errorf("failed to restore data file: %w", err)
	}

	return current, nil
}

func (m *Manager) verifyBackup(path string) error {
	if !m.isSQLite() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return fmt.Errorf("not a JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
