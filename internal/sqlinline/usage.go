package sqlinline

const QInsertUsageEvent = `--sql 6d4f2a91-3c58-4e07-8b26-5a90e1c7f3b2
insert into usage_events(id, user_id, request_id, event_type, success, latency_ms, created_at, properties)
values (gen_random_uuid(), $1::uuid, nullif($2::text, '')::uuid, $3::text, $4::boolean, $5::int, now(), coalesce($6::jsonb, '{}'::jsonb));
`
