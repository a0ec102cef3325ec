package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/asaidimu/go-kente/core"
	"github.com/asaidimu/go-kente/core/record"
	"github.com/asaidimu/go-kente/core/schema"
	"github.com/asaidimu/go-kente/sqlite"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const dbFileName = "user.db"

// User is the demo record type: one row in the users table.
type User struct {
	ID    int64
	Name  string
	Email string
	Age   *int64
}

// userTable declares the column bindings for User.
func userTable() *schema.Builder[User] {
	return schema.New[User]("users").
		Column("id", core.KindInt,
			func(u *User) core.Value { return core.Int(u.ID) },
			func(u *User, v core.Value) error {
				n, err := v.Int64()
				if err != nil {
					return err
				}
				u.ID = n
				return nil
			}).Identity().AutoIncrement().
		Column("name", core.KindText,
			func(u *User) core.Value { return core.Text(u.Name) },
			func(u *User, v core.Value) error {
				s, err := v.Text()
				if err != nil {
					return err
				}
				u.Name = s
				return nil
			}).MaxLength(64).
		Column("email", core.KindText,
			func(u *User) core.Value { return core.Text(u.Email) },
			func(u *User, v core.Value) error {
				s, err := v.Text()
				if err != nil {
					return err
				}
				u.Email = s
				return nil
			}).
		Column("age", core.KindInt,
			func(u *User) core.Value { return core.NullableInt(u.Age) },
			func(u *User, v core.Value) error {
				if v.IsNull() {
					u.Age = nil
					return nil
				}
				n, err := v.Int64()
				if err != nil {
					return err
				}
				u.Age = &n
				return nil
			}).Nullable().
		End()
}

func main() {
	// Start fresh on every run.
	if err := os.Remove(dbFileName); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database file %s: %v", dbFileName, err)
	}

	exec, err := sqlite.Open(dbFileName, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if cErr := exec.Close(); cErr != nil {
			log.Printf("Error closing database: %v", cErr)
		}
	}()

	_, err = exec.DB().Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		age INTEGER
	)`)
	if err != nil {
		log.Fatalf("Failed to create users table: %v", err)
	}
	fmt.Println("Created 'users' table.")

	registry := schema.NewRegistry()
	schema.Register(registry, userTable())

	users, err := record.NewRepository[User](registry, exec, nil)
	if err != nil {
		log.Fatalf("Failed to build users repository: %v", err)
	}

	users.Subscribe(record.EventCreateSuccess, func(ctx context.Context, event record.Event) error {
		fmt.Printf("Record added to table %q at %s\n", event.Table, event.Timestamp.Format("15:04:05"))
		return nil
	})

	ctx := context.Background()

	alice := &User{Name: "Alice Smith", Email: "alice@example.com", Age: core.Int64Ptr(30)}
	if err := users.Create(ctx, alice); err != nil {
		log.Fatalf("Failed to insert Alice: %v", err)
	}
	fmt.Printf("Inserted Alice with id %d.\n", alice.ID)

	bob := &User{Name: "Bob Jones", Email: "bob@example.com"}
	if err := users.Create(ctx, bob); err != nil {
		log.Fatalf("Failed to insert Bob: %v", err)
	}

	alice.Name = "Alice Jones"
	if err := users.Save(ctx, alice, "name"); err != nil {
		log.Fatalf("Failed to rename Alice: %v", err)
	}

	matched, err := users.Find(ctx, map[string]any{"name": "Alice Jones"})
	if err != nil {
		log.Fatalf("Failed to find users: %v", err)
	}
	fmt.Printf("Found %d user(s) named Alice Jones.\n", len(matched))

	fetched, err := users.Get(ctx, bob.ID)
	if err != nil {
		log.Fatalf("Failed to fetch Bob: %v", err)
	}
	fmt.Printf("Fetched %s <%s>.\n", fetched.Name, fetched.Email)

	if err := users.Remove(ctx, bob); err != nil {
		log.Fatalf("Failed to remove Bob: %v", err)
	}
	if _, err := users.Get(ctx, bob.ID); err != nil {
		fmt.Printf("Bob is gone: %v\n", err)
	}

	fmt.Printf("\nDatabase available at %s; inspect it with the sqlite3 CLI.\n", dbFileName)
}
