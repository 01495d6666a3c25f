package export

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    taken_at             TEXT NOT NULL,
    range_start          TEXT,
    range_end            TEXT
);

CREATE TABLE IF NOT EXISTS charts (
    snapshot_id          INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    metric               TEXT NOT NULL,
    title                TEXT NOT NULL,
    unit                 TEXT NOT NULL,
    variant              TEXT,
    degree               INTEGER NOT NULL,
    formula              TEXT,
    r_squared            REAL,
    PRIMARY KEY (snapshot_id, metric)
);

CREATE TABLE IF NOT EXISTS points (
    snapshot_id          INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    metric               TEXT NOT NULL,
    position             INTEGER NOT NULL,
    period               TEXT NOT NULL,
    value                REAL NOT NULL,
    predicted            INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (snapshot_id, metric, position)
);

CREATE TABLE IF NOT EXISTS annotations (
    id                   TEXT NOT NULL,
    snapshot_id          INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    metric               TEXT NOT NULL,
    period               TEXT NOT NULL,
    note                 TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    PRIMARY KEY (snapshot_id, id)
);

CREATE INDEX IF NOT EXISTS idx_points_metric ON points(metric);
`
