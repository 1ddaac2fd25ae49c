package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

func NewMariaDB(cfg Config) (*sql.DB, error) {
	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
	db, err := sql.Open("mysql", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id VARCHAR(64) NOT NULL,
			collected_at VARCHAR(20) NOT NULL,
			title TEXT NOT NULL,
			provider VARCHAR(255) NOT NULL,
			published_at VARCHAR(40) NOT NULL,
			url VARCHAR(512) NOT NULL,
			genre VARCHAR(255) NOT NULL,
			body MEDIUMTEXT NOT NULL,
			PRIMARY KEY (url)
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			result TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
