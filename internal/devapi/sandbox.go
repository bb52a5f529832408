package devapi

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/database-playground/sqlquest/models"

	_ "github.com/mattn/go-sqlite3"
)

const seedSchema = `
CREATE TABLE trainers (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    hometown TEXT,
    badges INTEGER DEFAULT 0
);

INSERT INTO trainers VALUES
    (1, 'Ash Ketchum', 'Pallet Town', 8),
    (2, 'Misty', 'Cerulean City', 8),
    (3, 'Brock', 'Pewter City', 8),
    (4, 'Gary Oak', 'Pallet Town', 10);

CREATE TABLE pokemon (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    trainer_id INTEGER,
    level INTEGER DEFAULT 5,
    cp INTEGER,
    sprite_url TEXT,
    FOREIGN KEY (trainer_id) REFERENCES trainers(id)
);

INSERT INTO pokemon VALUES
    (25, 'Pikachu', 'Electric', 1, 25, 320, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png'),
    (1, 'Bulbasaur', 'Grass', 1, 15, 180, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/1.png'),
    (4, 'Charmander', 'Fire', 1, 12, 150, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/4.png'),
    (7, 'Squirtle', 'Water', 1, 10, 140, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/7.png'),
    (120, 'Staryu', 'Water', 2, 22, 280, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/120.png'),
    (121, 'Starmie', 'Water', 2, 28, 380, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/121.png'),
    (95, 'Onix', 'Rock', 3, 28, 450, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/95.png'),
    (74, 'Geodude', 'Rock', 3, 18, 220, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/74.png'),
    (59, 'Arcanine', 'Fire', 4, 30, 520, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/59.png'),
    (130, 'Gyarados', 'Water', 4, 32, 580, 'https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/130.png');

CREATE TABLE gym_badges (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    city TEXT NOT NULL,
    type TEXT NOT NULL,
    gym_leader TEXT
);

INSERT INTO gym_badges VALUES
    (1, 'Boulder Badge', 'Pewter City', 'Rock', 'Brock'),
    (2, 'Cascade Badge', 'Cerulean City', 'Water', 'Misty'),
    (3, 'Thunder Badge', 'Vermilion City', 'Electric', 'Lt. Surge'),
    (4, 'Rainbow Badge', 'Celadon City', 'Grass', 'Erika'),
    (5, 'Soul Badge', 'Fuchsia City', 'Poison', 'Koga'),
    (6, 'Marsh Badge', 'Saffron City', 'Psychic', 'Sabrina'),
    (7, 'Volcano Badge', 'Cinnabar Island', 'Fire', 'Blaine'),
    (8, 'Earth Badge', 'Viridian City', 'Ground', 'Giovanni');

CREATE TABLE items (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    price INTEGER,
    effect TEXT
);

INSERT INTO items VALUES
    (1, 'Potion', 'Medicine', 300, 'Restores 20 HP'),
    (2, 'Super Potion', 'Medicine', 700, 'Restores 50 HP'),
    (3, 'Pokeball', 'Pokeballs', 200, 'Standard Pokeball'),
    (4, 'Great Ball', 'Pokeballs', 600, 'Better catch rate'),
    (5, 'Ultra Ball', 'Pokeballs', 1200, 'High catch rate'),
    (6, 'Rare Candy', 'Evolution', 1000, 'Level up by 1'),
    (7, 'TM01', 'Technical Machine', 3000, 'Mega Punch'),
    (8, 'Master Ball', 'Pokeballs', 99999, '100% catch rate');
`

// Sandbox runs statements against a freshly seeded in-memory database.
// Nothing survives between two calls of Run.
type Sandbox struct {
	driver string
	seed   string
}

// NewSandbox creates a Sandbox seeded with the sample Pokemon data.
func NewSandbox() *Sandbox {
	return &Sandbox{driver: "sqlite3", seed: seedSchema}
}

// Run executes the statements in order and stops at the first failing
// statement.
func (s *Sandbox) Run(ctx context.Context, statements []string) (models.ExecutionResponse, error) {
	db, err := sql.Open(s.driver, ":memory:")
	if err != nil {
		return models.ExecutionResponse{}, fmt.Errorf("open sandbox: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close sandbox", "error", err)
		}
	}()

	// every connection to :memory: is a separate database
	conn, err := db.Conn(ctx)
	if err != nil {
		return models.ExecutionResponse{}, fmt.Errorf("connect sandbox: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("failed to close sandbox connection", "error", err)
		}
	}()

	if _, err := conn.ExecContext(ctx, s.seed); err != nil {
		return models.ExecutionResponse{}, fmt.Errorf("seed sandbox: %w", err)
	}

	results := make([]models.StatementResult, 0, len(statements))
	stopped := false

	for i, statement := range statements {
		result := runStatement(ctx, conn, statement)
		result.StatementNumber = i + 1
		result.Statement = statement
		results = append(results, result)

		if !result.Success {
			stopped = true
			break
		}
	}

	return models.ExecutionResponse{
		Success:            !stopped,
		MultiStatement:     len(statements) > 1,
		TotalStatements:    len(statements),
		ExecutedStatements: len(results),
		Stopped:            stopped,
		Results:            results,
	}, nil
}

func runStatement(ctx context.Context, conn *sql.Conn, statement string) models.StatementResult {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(statement)), "SELECT") {
		columns, data, err := query(ctx, conn, statement)
		if err != nil {
			return models.StatementResult{Success: false, Error: err.Error()}
		}

		rowCount := len(data)
		return models.StatementResult{
			Success:  true,
			Columns:  columns,
			Data:     data,
			RowCount: &rowCount,
		}
	}

	res, err := conn.ExecContext(ctx, statement)
	if err != nil {
		return models.StatementResult{Success: false, Error: err.Error()}
	}

	result := models.StatementResult{Success: true, Message: "Success"}
	if affected, err := res.RowsAffected(); err == nil {
		rowCount := int(affected)
		result.RowCount = &rowCount
	}

	return result
}

func query(ctx context.Context, conn *sql.Conn, statement string) ([]string, []models.Row, error) {
	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	data := make([]models.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, err
		}

		row := make(models.Row, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		data = append(data, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return columns, data, nil
}
