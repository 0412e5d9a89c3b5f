// journal/schema.go
package journal

// Schema matches the tables the trade service keeps in its SQLite file, so a
// copy of that database can be opened directly.
const Schema = `
CREATE TABLE IF NOT EXISTS trade (
	id INTEGER PRIMARY KEY,
	timestamp DATETIME,
	instrument VARCHAR(20),
	direction VARCHAR(10),
	entry FLOAT,
	exit FLOAT,
	stop_loss FLOAT,
	take_profit FLOAT,
	size FLOAT,
	risk FLOAT,
	reward FLOAT,
	profit_loss FLOAT,
	duration VARCHAR(20),
	comments TEXT
);

CREATE TABLE IF NOT EXISTS screenshot (
	id INTEGER PRIMARY KEY,
	filename VARCHAR(255),
	filepath VARCHAR(255),
	upload_date DATETIME,
	trade_id INTEGER NOT NULL REFERENCES trade(id)
);

CREATE INDEX IF NOT EXISTS idx_trade_timestamp ON trade(timestamp);
CREATE INDEX IF NOT EXISTS idx_screenshot_trade ON screenshot(trade_id);
`
