package postgres

const queryInsertRun = `
	INSERT INTO runs (id, provider, username, origin, generated_at, document)
	VALUES ($1, $2, $3, $4, $5, $6)
`

const queryInsertGrowthBucket = `
	INSERT INTO growth_buckets (
		run_id, series, granularity, label, bucket_start,
		count, measure, cumulative_count, cumulative_measure, distinct_entities
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

const queryLatestRun = `
	SELECT id, provider, username, origin, generated_at, document
	FROM runs
	WHERE provider = $1 AND username = $2
	ORDER BY generated_at DESC, created_at DESC
	LIMIT 1
`

const queryGrowthBuckets = `
	SELECT series, granularity, label, bucket_start,
	       count, measure, cumulative_count, cumulative_measure, distinct_entities
	FROM growth_buckets
	WHERE run_id = $1
	ORDER BY series ASC, granularity ASC, bucket_start ASC
`

const querySchemaExists = `
	SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_name = 'runs'
	)
`
