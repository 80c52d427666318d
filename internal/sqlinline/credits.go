package sqlinline

// QGetOrResetCredits creates the ledger row on first touch and refills the
// balance when the stored reset date is behind the current calendar date.
// Running it twice on the same day leaves the row untouched. $2 seeds
// daily_limit for brand-new rows only.
const QGetOrResetCredits = `--sql 2c7de14a-5b0f-4e6d-9a83-1f26c08b7d43
insert into user_credits (user_id, credits_remaining, daily_limit, last_reset_date, total_credits_used, created_at, updated_at)
values ($1::uuid, $2::int, $2::int, current_date, 0, now(), now())
on conflict (user_id) do update set
    credits_remaining = case
        when user_credits.last_reset_date < current_date then user_credits.daily_limit
        else user_credits.credits_remaining
    end,
    last_reset_date = greatest(user_credits.last_reset_date, current_date),
    updated_at = case
        when user_credits.last_reset_date < current_date then now()
        else user_credits.updated_at
    end
returning user_id, credits_remaining, daily_limit, last_reset_date, total_credits_used, created_at, updated_at;
`

// QDeductCredits spends credits with a single conditional update so two
// concurrent deductions can never drive the balance negative. The same-day
// guard makes it a no-op when the date rolled over after the reset check; the
// caller re-runs the reset and retries.
const QDeductCredits = `--sql 8e91b3f6-0d27-4c55-bf1a-74a9e25c6d08
update user_credits
set credits_remaining = credits_remaining - $2::int,
    total_credits_used = total_credits_used + $2::int,
    updated_at = now()
where user_id = $1::uuid
  and last_reset_date = current_date
  and credits_remaining >= $2::int
returning credits_remaining, total_credits_used;
`

const QSetDailyLimit = `--sql f3a6d0c1-27e9-4b38-9d54-b81c4f7a2e96
update user_credits
set daily_limit = $2::int,
    credits_remaining = case when $3::boolean then $2::int else least(credits_remaining, $2::int) end,
    last_reset_date = current_date,
    updated_at = now()
where user_id = $1::uuid
returning credits_remaining, daily_limit;
`
