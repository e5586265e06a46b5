package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the carecircle DDL. Idempotent: migrate can run on every start.
const Schema = `
CREATE TABLE IF NOT EXISTS people (
	id          BIGSERIAL PRIMARY KEY,
	role        VARCHAR(20) NOT NULL,
	name        VARCHAR(200) NOT NULL,
	email       VARCHAR(255),
	phone       VARCHAR(50),
	avatar_url  VARCHAR(500),
	location    VARCHAR(200),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS circle_links (
	id           BIGSERIAL PRIMARY KEY,
	client_id    BIGINT NOT NULL REFERENCES people(id),
	member_id    BIGINT NOT NULL REFERENCES people(id),
	role         VARCHAR(30) NOT NULL,
	relationship VARCHAR(100),
	can_edit     BOOLEAN NOT NULL DEFAULT FALSE,
	notify       BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (client_id, member_id)
);

CREATE TABLE IF NOT EXISTS tasks (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT NOT NULL REFERENCES people(id),
	assigned_by BIGINT NOT NULL REFERENCES people(id),
	title       VARCHAR(300) NOT NULL,
	description TEXT,
	due_at      TIMESTAMPTZ,
	repeat      VARCHAR(20),
	status      VARCHAR(20) NOT NULL DEFAULT 'open',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_status ON tasks (user_id, status);

CREATE TABLE IF NOT EXISTS checkins (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT NOT NULL REFERENCES people(id),
	recorded_by VARCHAR(20) NOT NULL DEFAULT 'caregiver',
	mood        VARCHAR(50),
	sleep_hours DOUBLE PRECISION,
	hydration   VARCHAR(50),
	notes       TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_checkins_user ON checkins (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS alerts (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL REFERENCES people(id),
	caregiver_id BIGINT NOT NULL REFERENCES people(id),
	kind         VARCHAR(30) NOT NULL,
	message      TEXT NOT NULL,
	is_read      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_alerts_caregiver ON alerts (caregiver_id, created_at DESC);

CREATE TABLE IF NOT EXISTS memories (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT REFERENCES people(id),
	title       VARCHAR(300) NOT NULL,
	note        TEXT,
	image_url   VARCHAR(500),
	occurred_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_memories_occurred ON memories (occurred_at DESC);
`

// Migrate applies the embedded schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
