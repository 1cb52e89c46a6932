package db

import "fmt"

const tableName = "intellicath_data"

var schemas = map[string]string{
	"sqlite3": `
    CREATE TABLE IF NOT EXISTS intellicath_data (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        urine_output REAL NOT NULL DEFAULT 0,
        urine_flow_rate REAL NOT NULL DEFAULT 0,
        catheter_bag_volume REAL NOT NULL DEFAULT 0,
        remaining_volume REAL NOT NULL DEFAULT 0,
        predicted_time VARCHAR(64) NOT NULL DEFAULT '',
        actual_time VARCHAR(16)
    )`,
	"mysql": `
    CREATE TABLE IF NOT EXISTS intellicath_data (
        id INT AUTO_INCREMENT PRIMARY KEY,
        urine_output DOUBLE NOT NULL DEFAULT 0,
        urine_flow_rate DOUBLE NOT NULL DEFAULT 0,
        catheter_bag_volume DOUBLE NOT NULL DEFAULT 0,
        remaining_volume DOUBLE NOT NULL DEFAULT 0,
        predicted_time VARCHAR(64) NOT NULL DEFAULT '',
        actual_time VARCHAR(16) NULL
    )`,
}

func schemaFor(driver string) (string, error) {
	schema, ok := schemas[driver]
	if !ok {
		return "", fmt.Errorf("no schema for driver %q", driver)
	}
	return schema, nil
}
