package sqlite

import "database/sql"

// schema sets up the three relations. There are deliberately no foreign keys:
// result rows stay consistent because callers upsert the student and the
// competition before inserting a result. results.id only records insertion
// order so participations load deterministically.
const schema = `
CREATE TABLE IF NOT EXISTS students (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    firstname TEXT NOT NULL,
    lastname TEXT NOT NULL,
    email TEXT NOT NULL,
    level TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS competitions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL,
    competition_id INTEGER NOT NULL,
    problems_solved INTEGER NOT NULL,
    placement INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_students_identity ON students(firstname, lastname, email);
CREATE INDEX IF NOT EXISTS idx_competitions_name ON competitions(name);
CREATE INDEX IF NOT EXISTS idx_results_student_id ON results(student_id);
CREATE INDEX IF NOT EXISTS idx_results_competition_id ON results(competition_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
