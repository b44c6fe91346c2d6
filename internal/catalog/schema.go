package catalog

// schemaVersion tracks the catalog database layout. Open refuses databases
// written by a different version; the catalog is re-imported after a bump.
const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exercises (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    muscle_group TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS video_clips (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    exercise_id      TEXT REFERENCES exercises(id),
    kind             TEXT NOT NULL,
    archetype        TEXT NOT NULL,
    provider         TEXT NOT NULL,
    bucket_key       TEXT,
    playback_id      TEXT,
    stream_id        TEXT,
    external_url     TEXT,
    title            TEXT NOT NULL DEFAULT '',
    duration_seconds INTEGER NOT NULL DEFAULT 0,
    active           INTEGER NOT NULL DEFAULT 1,
    placeholder      INTEGER NOT NULL DEFAULT 0,
    mood             TEXT NOT NULL DEFAULT '',
    theme            TEXT NOT NULL DEFAULT '',
    week_number      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_clips_lookup
    ON video_clips (exercise_id, kind, archetype);
CREATE INDEX IF NOT EXISTS idx_clips_global
    ON video_clips (kind, archetype) WHERE exercise_id IS NULL;
`
