package workouts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/logger"
)

// migrationStep rewrites the raw collection from one version to the next.
type migrationStep struct {
	from  string
	to    string
	apply func(raw []json.RawMessage) ([]json.RawMessage, error)
}

var migrationSteps = []migrationStep{
	{from: "1.0", to: "2.0", apply: backfillNotesAndLastModified},
}

// ensureSchema stamps the current version on first access and migrates
// older collections in place.
func (s *Store) ensureSchema() error {
	version, ok, err := s.backend.GetItem(constants.VersionKey)
	if err != nil {
		return err
	}
	if !ok || version == "" {
		if err := s.backend.SetItem(constants.VersionKey, constants.SchemaVersion); err != nil {
			return err
		}
		logger.Info("Storage version initialized", "version", constants.SchemaVersion)
		return nil
	}
	if version == constants.SchemaVersion {
		return nil
	}

	if compareVersions(version, constants.SchemaVersion) > 0 {
		return fmt.Errorf("stored data version %s is newer than supported version %s - please upgrade fittrack", version, constants.SchemaVersion)
	}

	logger.Info("Migrating workout data", "from", version, "to", constants.SchemaVersion)
	if err := s.migrate(version); err != nil {
		return fmt.Errorf("failed to migrate workout data from %s: %w", version, err)
	}
	return s.backend.SetItem(constants.VersionKey, constants.SchemaVersion)
}

// SchemaVersion returns the stamped version, or "" when none is stored
func (s *Store) SchemaVersion() (string, error) {
	version, _, err := s.backend.GetItem(constants.VersionKey)
	return version, err
}

func (s *Store) migrate(from string) error {
	version := from
	for version != constants.SchemaVersion {
		step, ok := findStep(version)
		if !ok {
			logger.Warn("No migration path, stamping current version", "from", version)
			return nil
		}

		raw, err := s.loadRaw()
		if err != nil {
			return err
		}
		if raw != nil {
			migrated, err := step.apply(raw)
			if err != nil {
				return err
			}
			data, err := json.Marshal(migrated)
			if err != nil {
				return err
			}
			if err := s.backend.SetItem(constants.WorkoutsKey, string(data)); err != nil {
				return err
			}
		}
		logger.Info("Migration complete", "from", step.from, "to", step.to)
		version = step.to
	}
	return nil
}

func findStep(from string) (migrationStep, bool) {
	for _, step := range migrationSteps {
		if step.from == from {
			return step, true
		}
	}
	return migrationStep{}, false
}

// backfillNotesAndLastModified adds notes="" and lastModified=timestamp to
// every object record. Anything else is kept verbatim.
func backfillNotesAndLastModified(raw []json.RawMessage) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(raw))
	for i, r := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(r, &fields); err != nil || fields == nil {
			out[i] = r
			continue
		}

		if isBlank(fields["notes"], `""`) {
			fields["notes"] = json.RawMessage(`""`)
		}
		if ts, ok := fields["timestamp"]; ok && isBlank(fields["lastModified"], "0") {
			fields["lastModified"] = ts
		}

		data, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func isBlank(v json.RawMessage, zero string) bool {
	return len(v) == 0 || string(v) == "null" || string(v) == zero
}

// compareVersions orders dotted numeric versions. Unparseable parts sort as 0.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y int
		if i < len(as) {
			x, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			y, _ = strconv.Atoi(bs[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
