package generator

import (
	"fmt"
	"strings"

	"github.com/eduardo/stackforge/internal/domain"
)

// handlersPath is the conventional location of the generated database
// handler module.
const handlersPath = "src/backend/handlers/db.ts"

// newUserInterface is the input shape of createUser, shared by every auth
// handler variant.
const newUserInterface = `export interface NewUser {
  id: string;
  email: string;
  name?: string;
  avatarUrl?: string;
  provider: string;
}
`

// GenerateHandlers renders the get/create handler module for the resolved
// configuration, using the query syntax of the selected driver. A key
// with no registered template is a defect in the template matrix and
// yields UnsupportedCombinationError, never another driver's code.
func GenerateHandlers(cfg *domain.Config) (*domain.Artifact, error) {
	if cfg.Engine == domain.EngineNone {
		return nil, nil
	}
	key := KeyFor(cfg)

	var text string
	var err error
	switch key.ORM {
	case ORMKindSQL:
		text, err = sqlHandlers(key)
	case ORMKindDrizzle:
		text, err = drizzleHandlers(key)
	case ORMKindPrisma:
		text, err = prismaHandlers(key)
	case ORMKindNative:
		text, err = nativeHandlers(key)
	default:
		err = domain.UnsupportedCombinationError{Artifact: "handlers", Engine: key.Engine, Host: key.Host, ORM: domain.ORM(key.ORM)}
	}
	if err != nil {
		return nil, err
	}
	return &domain.Artifact{Path: handlersPath, Text: text}, nil
}

// sqlClient describes a raw-SQL driver's handle type and call style.
type sqlClient struct {
	typeName   string
	typeImport string
}

// sqlClientFor is exhaustive over the supported (engine, host) pairs. A
// pair outside the matrix returns ok=false; callers must turn that into
// UnsupportedCombinationError rather than fall back to another driver.
func sqlClientFor(key TemplateKey) (sqlClient, bool) {
	switch key.Engine {
	case domain.EngineSQLite:
		switch key.Host {
		case domain.HostNone:
			return sqlClient{typeName: "Database", typeImport: `import { Database } from "bun:sqlite";`}, true
		case domain.HostTurso:
			return sqlClient{typeName: "Client", typeImport: `import type { Client } from "@libsql/client";`}, true
		}
	case domain.EnginePostgreSQL:
		switch key.Host {
		case domain.HostNone:
			return sqlClient{typeName: "Pool", typeImport: `import type { Pool } from "pg";`}, true
		case domain.HostNeon:
			return sqlClient{typeName: "NeonClient", typeImport: `import { neon } from "@neondatabase/serverless";

type NeonClient = ReturnType<typeof neon>;`}, true
		case domain.HostPlanetScale:
			return sqlClient{typeName: "Client", typeImport: `import type { Client } from "@planetscale/database";`}, true
		}
	case domain.EngineMySQL:
		switch key.Host {
		case domain.HostNone:
			return sqlClient{typeName: "Pool", typeImport: `import type { Pool } from "mysql2/promise";`}, true
		case domain.HostPlanetScale:
			return sqlClient{typeName: "Client", typeImport: `import type { Client } from "@planetscale/database";`}, true
		}
	case domain.EngineMariaDB:
		if key.Host == domain.HostNone {
			return sqlClient{typeName: "Pool", typeImport: `import type { Pool } from "mysql2/promise";`}, true
		}
	}
	return sqlClient{}, false
}

func sqlHandlers(key TemplateKey) (string, error) {
	client, ok := sqlClientFor(key)
	if !ok {
		return "", domain.UnsupportedCombinationError{Artifact: "handlers", Engine: key.Engine, Host: key.Host}
	}

	var b strings.Builder
	b.WriteString(client.typeImport)
	b.WriteString("\n\n")

	switch {
	case key.Engine == domain.EngineSQLite && key.Host == domain.HostNone:
		writeBunSQLiteHandlers(&b, key.Auth)
	case key.Engine == domain.EngineSQLite && key.Host == domain.HostTurso:
		writeLibSQLHandlers(&b, key.Auth)
	case key.Engine == domain.EnginePostgreSQL && key.Host == domain.HostNone:
		writePgHandlers(&b, key.Auth)
	case key.Engine == domain.EnginePostgreSQL && key.Host == domain.HostNeon:
		writeNeonHandlers(&b, key.Auth)
	case key.Host == domain.HostPlanetScale:
		writePlanetScaleHandlers(&b, key.Auth)
	case (key.Engine == domain.EngineMySQL || key.Engine == domain.EngineMariaDB) && key.Host == domain.HostNone:
		writeMySQLHandlers(&b, key.Auth)
	default:
		return "", domain.UnsupportedCombinationError{Artifact: "handlers", Engine: key.Engine, Host: key.Host}
	}
	return b.String(), nil
}

func writeBunSQLiteHandlers(b *strings.Builder, auth AuthKind) {
	if auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export function getUser(db: Database, email: string) {
  return db.query("SELECT * FROM users WHERE email = ?").get(email);
}

export function createUser(db: Database, user: NewUser) {
  db.query(
    "INSERT INTO users (id, email, name, avatar_url, provider, created_at) VALUES (?, ?, ?, ?, ?, ?)",
  ).run(user.id, user.email, user.name ?? null, user.avatarUrl ?? null, user.provider, Date.now());
}
`)
		return
	}
	b.WriteString(`export function getCount(db: Database): number {
  const row = db
    .query("SELECT count FROM count_history ORDER BY id DESC LIMIT 1")
    .get() as { count: number } | null;
  return row?.count ?? 0;
}

export function createCount(db: Database, count: number) {
  db.query("INSERT INTO count_history (count, created_at) VALUES (?, ?)").run(count, Date.now());
}
`)
}

func writeLibSQLHandlers(b *strings.Builder, auth AuthKind) {
	if auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export async function getUser(db: Client, email: string) {
  const result = await db.execute({ sql: "SELECT * FROM users WHERE email = ?", args: [email] });
  return result.rows[0] ?? null;
}

export async function createUser(db: Client, user: NewUser) {
  await db.execute({
    sql: "INSERT INTO users (id, email, name, avatar_url, provider, created_at) VALUES (?, ?, ?, ?, ?, ?)",
    args: [user.id, user.email, user.name ?? null, user.avatarUrl ?? null, user.provider, Date.now()],
  });
}
`)
		return
	}
	b.WriteString(`export async function getCount(db: Client): Promise<number> {
  const result = await db.execute("SELECT count FROM count_history ORDER BY id DESC LIMIT 1");
  return (result.rows[0]?.count as number) ?? 0;
}

export async function createCount(db: Client, count: number) {
  await db.execute({
    sql: "INSERT INTO count_history (count, created_at) VALUES (?, ?)",
    args: [count, Date.now()],
  });
}
`)
}

func writePgHandlers(b *strings.Builder, auth AuthKind) {
	if auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export async function getUser(db: Pool, email: string) {
  const result = await db.query("SELECT * FROM users WHERE email = $1", [email]);
  return result.rows[0] ?? null;
}

export async function createUser(db: Pool, user: NewUser) {
  await db.query(
    "INSERT INTO users (id, email, name, avatar_url, provider, created_at) VALUES ($1, $2, $3, $4, $5, NOW())",
    [user.id, user.email, user.name ?? null, user.avatarUrl ?? null, user.provider],
  );
}
`)
		return
	}
	b.WriteString(`export async function getCount(db: Pool): Promise<number> {
  const result = await db.query("SELECT count FROM count_history ORDER BY id DESC LIMIT 1");
  return result.rows[0]?.count ?? 0;
}

export async function createCount(db: Pool, count: number) {
  await db.query("INSERT INTO count_history (count, created_at) VALUES ($1, NOW())", [count]);
}
`)
}

func writeNeonHandlers(b *strings.Builder, auth AuthKind) {
	if auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export async function getUser(db: NeonClient, email: string) {
  const rows = await db.query("SELECT * FROM users WHERE email = $1", [email]);
  return rows[0] ?? null;
}

export async function createUser(db: NeonClient, user: NewUser) {
  await db.query(
    "INSERT INTO users (id, email, name, avatar_url, provider, created_at) VALUES ($1, $2, $3, $4, $5, NOW())",
    [user.id, user.email, user.name ?? null, user.avatarUrl ?? null, user.provider],
  );
}
`)
		return
	}
	b.WriteString(`export async function getCount(db: NeonClient): Promise<number> {
  const rows = await db.query("SELECT count FROM count_history ORDER BY id DESC LIMIT 1");
  return rows[0]?.count ?? 0;
}

export async function createCount(db: NeonClient, count: number) {
  await db.query("INSERT INTO count_history (count, created_at) VALUES ($1, NOW())", [count]);
}
`)
}

func writePlanetScaleHandlers(b *strings.Builder, auth AuthKind) {
	if auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export async function getUser(db: Client, email: string) {
  const result = await db.execute("SELECT * FROM users WHERE email = ?", [email]);
  return result.rows[0] ?? null;
}

export async function createUser(db: Client, user: NewUser) {
  await db.execute(
    "INSERT INTO users (id, email, name, avatar_url, provider, created_at) VALUES (?, ?, ?, ?, ?, NOW())",
    [user.id, user.email, user.name ?? null, user.avatarUrl ?? null, user.provider],
  );
}
`)
		return
	}
	b.WriteString(`export async function getCount(db: Client): Promise<number> {
  const result = await db.execute("SELECT count FROM count_history ORDER BY id DESC LIMIT 1");
  return (result.rows[0] as { count?: number } | undefined)?.count ?? 0;
}

export async function createCount(db: Client, count: number) {
  await db.execute("INSERT INTO count_history (count, created_at) VALUES (?, NOW())", [count]);
}
`)
}

func writeMySQLHandlers(b *strings.Builder, auth AuthKind) {
	if auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export async function getUser(db: Pool, email: string) {
  const [rows] = await db.execute("SELECT * FROM users WHERE email = ?", [email]);
  return (rows as unknown[])[0] ?? null;
}

export async function createUser(db: Pool, user: NewUser) {
  await db.execute(
    "INSERT INTO users (id, email, name, avatar_url, provider, created_at) VALUES (?, ?, ?, ?, ?, NOW())",
    [user.id, user.email, user.name ?? null, user.avatarUrl ?? null, user.provider],
  );
}
`)
		return
	}
	b.WriteString(`export async function getCount(db: Pool): Promise<number> {
  const [rows] = await db.execute("SELECT count FROM count_history ORDER BY id DESC LIMIT 1");
  return (rows as { count: number }[])[0]?.count ?? 0;
}

export async function createCount(db: Pool, count: number) {
  await db.execute("INSERT INTO count_history (count, created_at) VALUES (?, NOW())", [count]);
}
`)
}

// drizzleDatabaseType maps the supported (engine, host) pairs onto the
// drizzle database type and the dialect module exporting it. Pairs outside
// the matrix return ok=false, same contract as sqlClientFor.
func drizzleDatabaseType(key TemplateKey) (typeName, module string, ok bool) {
	switch key.Engine {
	case domain.EngineSQLite:
		switch key.Host {
		case domain.HostNone:
			return "BunSQLiteDatabase", "drizzle-orm/bun-sqlite", true
		case domain.HostTurso:
			return "LibSQLDatabase", "drizzle-orm/libsql", true
		}
	case domain.EnginePostgreSQL:
		switch key.Host {
		case domain.HostNone:
			return "NodePgDatabase", "drizzle-orm/node-postgres", true
		case domain.HostNeon:
			return "NeonHttpDatabase", "drizzle-orm/neon-http", true
		case domain.HostPlanetScale:
			return "PlanetScaleDatabase", "drizzle-orm/planetscale-serverless", true
		}
	case domain.EngineMySQL:
		switch key.Host {
		case domain.HostNone:
			return "MySql2Database", "drizzle-orm/mysql2", true
		case domain.HostPlanetScale:
			return "PlanetScaleDatabase", "drizzle-orm/planetscale-serverless", true
		}
	case domain.EngineMariaDB:
		if key.Host == domain.HostNone {
			return "MySql2Database", "drizzle-orm/mysql2", true
		}
	}
	return "", "", false
}

func drizzleHandlers(key TemplateKey) (string, error) {
	typeName, module, ok := drizzleDatabaseType(key)
	if !ok {
		return "", domain.UnsupportedCombinationError{Artifact: "handlers", Engine: key.Engine, Host: key.Host, ORM: domain.ORMDrizzle}
	}

	var b strings.Builder
	if key.Auth == AuthKindAuth {
		fmt.Fprintf(&b, "import { eq } from \"drizzle-orm\";\nimport type { %s } from %q;\n\nimport { users } from \"../../../db/schema\";\n\n", typeName, module)
		b.WriteString(newUserInterface)
		fmt.Fprintf(&b, `
export async function getUser(db: %[1]s, email: string) {
  const rows = await db.select().from(users).where(eq(users.email, email)).limit(1);
  return rows[0] ?? null;
}

export async function createUser(db: %[1]s, user: NewUser) {
  await db.insert(users).values({
    id: user.id,
    email: user.email,
    name: user.name,
    avatarUrl: user.avatarUrl,
    provider: user.provider,
    createdAt: new Date(),
  });
}
`, typeName)
		return b.String(), nil
	}

	fmt.Fprintf(&b, "import { desc } from \"drizzle-orm\";\nimport type { %s } from %q;\n\nimport { countHistory } from \"../../../db/schema\";\n\n", typeName, module)
	fmt.Fprintf(&b, `export async function getCount(db: %[1]s): Promise<number> {
  const rows = await db.select().from(countHistory).orderBy(desc(countHistory.id)).limit(1);
  return rows[0]?.count ?? 0;
}

export async function createCount(db: %[1]s, count: number) {
  await db.insert(countHistory).values({ count, createdAt: new Date() });
}
`, typeName)
	return b.String(), nil
}

func prismaHandlers(key TemplateKey) (string, error) {
	var b strings.Builder
	b.WriteString("import type { PrismaClient } from \"@prisma/client\";\n\n")
	if key.Auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export async function getUser(db: PrismaClient, email: string) {
  return db.users.findUnique({ where: { email } });
}

export async function createUser(db: PrismaClient, user: NewUser) {
  return db.users.create({
    data: {
      id: user.id,
      email: user.email,
      name: user.name,
      avatarUrl: user.avatarUrl,
      provider: user.provider,
      createdAt: new Date(),
    },
  });
}
`)
		return b.String(), nil
	}
	b.WriteString(`export async function getCount(db: PrismaClient): Promise<number> {
  const row = await db.countHistory.findFirst({ orderBy: { id: "desc" } });
  return row?.count ?? 0;
}

export async function createCount(db: PrismaClient, count: number) {
  return db.countHistory.create({ data: { count, createdAt: new Date() } });
}
`)
	return b.String(), nil
}

// nativeHandlers covers document stores addressed through their own
// client API; today that is mongodb without an ORM.
func nativeHandlers(key TemplateKey) (string, error) {
	if key.Engine != domain.EngineMongoDB {
		return "", domain.UnsupportedCombinationError{Artifact: "handlers", Engine: key.Engine, Host: key.Host}
	}

	var b strings.Builder
	b.WriteString("import type { Db } from \"mongodb\";\n\n")
	if key.Auth == AuthKindAuth {
		b.WriteString(newUserInterface)
		b.WriteString(`
export async function getUser(db: Db, email: string) {
  return db.collection("users").findOne({ email });
}

export async function createUser(db: Db, user: NewUser) {
  await db.collection("users").insertOne({ ...user, createdAt: new Date() });
}
`)
		return b.String(), nil
	}
	b.WriteString(`export async function getCount(db: Db): Promise<number> {
  const doc = await db.collection("count_history").findOne({}, { sort: { _id: -1 } });
  return doc?.count ?? 0;
}

export async function createCount(db: Db, count: number) {
  await db.collection("count_history").insertOne({ count, createdAt: new Date() });
}
`)
	return b.String(), nil
}
