package store

// Key/value queries
const (
	queryGetValue = `
		SELECT value FROM kv WHERE namespace = ? AND name = ?`

	queryUpsertValue = `
		INSERT INTO kv (namespace, name, value, updated_at)
		VALUES (?, ?, ?, now())
		ON CONFLICT (namespace, name) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()`

	queryDeleteValue = `DELETE FROM kv WHERE namespace = ? AND name = ?`

	queryDeleteNamespace = `DELETE FROM kv WHERE namespace = ?`
)
