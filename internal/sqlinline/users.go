package sqlinline

const QUpsertGoogleUser = `--sql 4c0a8f7e-91d3-4b6a-8f02-6d5d2f3b9c11
insert into users (id, google_sub, email, name, picture, locale, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::text, now(), now())
on conflict (google_sub) do update set
    email = excluded.email,
    name = excluded.name,
    picture = excluded.picture,
    locale = excluded.locale,
    updated_at = now()
returning id, google_sub, email, name, picture, locale, created_at, updated_at;
`

const QSelectUserByID = `--sql 9f2b51d0-6c34-47e8-b6a1-0f8f34c2ae52
select id, google_sub, email, name, picture, locale, created_at, updated_at
from users
where id = $1::uuid
limit 1;
`

// QSelectUserIDByEmail backs the usercredits CLI, which lets operators
// address a user by email instead of UUID.
const QSelectUserIDByEmail = `--sql 5d8e12fb-a740-4c19-9b3e-2c61d9f04a77
select id
from users
where lower(email) = lower($1::text)
order by created_at
limit 1;
`
