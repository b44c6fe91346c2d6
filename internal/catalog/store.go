package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"fitcoach/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and applies the
// schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.CatalogDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string { return s.path }

func (s *Store) applySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, insertErr := s.db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); insertErr != nil {
			return fmt.Errorf("record schema version: %w", insertErr)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("catalog schema version %d does not match expected %d; re-import the catalog", version, schemaVersion)
	}
	return nil
}

// QueryClips runs one batched clip query for the provided filter. Results
// are stable-ordered by clip id so downstream selection stays deterministic,
// and inactive or placeholder clips never surface.
func (s *Store) QueryClips(ctx context.Context, f Filter) ([]Clip, error) {
	var (
		where []string
		args  []any
	)
	where = append(where, "active = 1", "placeholder = 0")

	switch {
	case f.GlobalOnly:
		where = append(where, "exercise_id IS NULL")
	case len(f.ExerciseIDs) > 0:
		placeholders := make([]string, len(f.ExerciseIDs))
		for i, id := range f.ExerciseIDs {
			placeholders[i] = "?"
			args = append(args, string(id))
		}
		where = append(where, fmt.Sprintf("exercise_id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(f.Kinds) > 0 {
		placeholders := make([]string, len(f.Kinds))
		for i, kind := range f.Kinds {
			placeholders[i] = "?"
			args = append(args, string(kind))
		}
		where = append(where, fmt.Sprintf("kind IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(f.Archetypes) > 0 {
		placeholders := make([]string, len(f.Archetypes))
		for i, archetype := range f.Archetypes {
			placeholders[i] = "?"
			args = append(args, string(archetype))
		}
		where = append(where, fmt.Sprintf("archetype IN (%s)", strings.Join(placeholders, ", ")))
	}
	if f.ExcludeID != 0 {
		where = append(where, "id != ?")
		args = append(args, int64(f.ExcludeID))
	}
	if f.WeekNumber > 0 {
		where = append(where, "week_number = ?")
		args = append(args, f.WeekNumber)
	}

	query := `SELECT id, exercise_id, kind, archetype, provider,
        bucket_key, playback_id, stream_id, external_url,
        title, duration_seconds, active, placeholder, mood, theme, week_number
        FROM video_clips WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clips: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		clip, scanErr := scanClip(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		clips = append(clips, clip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clips: %w", err)
	}
	return clips, nil
}

// ExercisesByID fetches the named exercises in one query. IDs missing from
// the catalog are simply absent from the returned map.
func (s *Store) ExercisesByID(ctx context.Context, ids []ExerciseID) (map[ExerciseID]Exercise, error) {
	result := make(map[ExerciseID]Exercise, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = string(id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, muscle_group FROM exercises WHERE id IN (`+strings.Join(placeholders, ", ")+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ex Exercise
		var id string
		if err := rows.Scan(&id, &ex.Name, &ex.MuscleGroup); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		ex.ID = ExerciseID(id)
		result[ex.ID] = ex
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}
	return result, nil
}

// InsertExercise upserts one exercise record.
func (s *Store) InsertExercise(ctx context.Context, ex Exercise) error {
	if strings.TrimSpace(string(ex.ID)) == "" {
		return errors.New("exercise id is required")
	}
	if strings.TrimSpace(ex.Name) == "" {
		return fmt.Errorf("exercise %s has no name", ex.ID)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercises (id, name, muscle_group, created_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET name = excluded.name, muscle_group = excluded.muscle_group`,
		string(ex.ID), ex.Name, ex.MuscleGroup, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert exercise %s: %w", ex.ID, err)
	}
	return nil
}

// InsertClip stores one clip record and returns its assigned id.
func (s *Store) InsertClip(ctx context.Context, clip Clip) (ClipID, error) {
	if clip.Locator == nil {
		return 0, errors.New("clip locator is required")
	}
	if _, err := ParseKind(string(clip.Kind)); err != nil {
		return 0, err
	}
	if _, err := ParseArchetype(string(clip.Archetype)); err != nil {
		return 0, err
	}

	var exerciseID any
	if clip.ExerciseID != "" {
		exerciseID = string(clip.ExerciseID)
	}

	var bucketKey, playbackID, streamID, externalURL any
	switch loc := clip.Locator.(type) {
	case BucketLocator:
		if strings.TrimSpace(loc.Key) == "" {
			return 0, fmt.Errorf("bucket clip %q has no object key", clip.Title)
		}
		bucketKey = loc.Key
	case StreamLocator:
		if loc.PlaybackID == "" && loc.StreamID == "" {
			return 0, fmt.Errorf("stream clip %q has neither playback nor stream id", clip.Title)
		}
		playbackID = nullable(loc.PlaybackID)
		streamID = nullable(loc.StreamID)
	case ExternalLocator:
		externalURL = nullable(loc.URL)
	default:
		return 0, fmt.Errorf("unsupported locator type %T", clip.Locator)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO video_clips (
            exercise_id, kind, archetype, provider,
            bucket_key, playback_id, stream_id, external_url,
            title, duration_seconds, active, placeholder, mood, theme, week_number
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exerciseID, string(clip.Kind), string(clip.Archetype), string(clip.Locator.Provider()),
		bucketKey, playbackID, streamID, externalURL,
		clip.Title, clip.DurationSeconds, boolInt(clip.Active), boolInt(clip.Placeholder),
		clip.Mood, clip.Theme, clip.WeekNumber)
	if err != nil {
		return 0, fmt.Errorf("insert clip: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return ClipID(id), nil
}

// KindCount is one row of the coverage summary.
type KindCount struct {
	Kind      Kind
	Archetype Archetype
	Count     int
}

// Stats summarizes active clip coverage per (kind, archetype).
func (s *Store) Stats(ctx context.Context) ([]KindCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, archetype, COUNT(*) FROM video_clips
         WHERE active = 1 AND placeholder = 0
         GROUP BY kind, archetype ORDER BY kind, archetype`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var counts []KindCount
	for rows.Next() {
		var row KindCount
		var kind, archetype string
		if err := rows.Scan(&kind, &archetype, &row.Count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		row.Kind = Kind(kind)
		row.Archetype = Archetype(archetype)
		counts = append(counts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClip(row rowScanner) (Clip, error) {
	var (
		clip        Clip
		id          int64
		exerciseID  sql.NullString
		kind        string
		archetype   string
		provider    string
		bucketKey   sql.NullString
		playbackID  sql.NullString
		streamID    sql.NullString
		externalURL sql.NullString
		active      int
		placeholder int
	)
	if err := row.Scan(&id, &exerciseID, &kind, &archetype, &provider,
		&bucketKey, &playbackID, &streamID, &externalURL,
		&clip.Title, &clip.DurationSeconds, &active, &placeholder,
		&clip.Mood, &clip.Theme, &clip.WeekNumber); err != nil {
		return Clip{}, fmt.Errorf("scan clip: %w", err)
	}

	clip.ID = ClipID(id)
	clip.ExerciseID = ExerciseID(exerciseID.String)
	clip.Kind = Kind(kind)
	clip.Archetype = Archetype(archetype)
	clip.Active = active != 0
	clip.Placeholder = placeholder != 0

	switch Provider(provider) {
	case ProviderR2:
		clip.Locator = BucketLocator{Key: bucketKey.String}
	case ProviderStream:
		clip.Locator = StreamLocator{PlaybackID: playbackID.String, StreamID: streamID.String}
	case ProviderExternal:
		clip.Locator = ExternalLocator{URL: externalURL.String}
	default:
		return Clip{}, fmt.Errorf("clip %d has unknown provider %q", id, provider)
	}
	return clip, nil
}

func nullable(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
