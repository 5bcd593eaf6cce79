// cmd/admintool/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/catalogadmin/backend/internal/config"
	"github.com/catalogadmin/backend/internal/database"
	"github.com/catalogadmin/backend/internal/repository"
	"github.com/catalogadmin/backend/internal/utils"
)

const usage = `Usage: admintool <command> [flags]

Commands:
  migrate                      create or update the database schema
  list-admins                  print every registered admin
  delete-admin -email <email>  delete an admin together with its products and images
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := utils.ConfigureLogger(cfg.Log, cfg.Environment); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logger")
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	admins := repository.NewAdminRepository(db)
	ctx := context.Background()

	switch cmd := os.Args[1]; cmd {
	case "migrate":
		err = database.RunMigrations(db)
	case "list-admins":
		err = listAdmins(ctx, admins, os.Stdout)
	case "delete-admin":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "email of the admin to delete")
		_ = fs.Parse(os.Args[2:])
		err = deleteAdmin(ctx, admins, *email)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logrus.WithError(err).Fatal("Command failed")
	}
}

func listAdmins(ctx context.Context, admins repository.AdminRepository, out io.Writer) error {
	list, err := admins.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Email, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func deleteAdmin(ctx context.Context, admins repository.AdminRepository, email string) error {
	if email == "" {
		return errors.New("-email is required")
	}

	admin, err := admins.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find admin %q: %w", email, err)
	}

	if err := admins.Delete(ctx, admin.ID); err != nil {
		return fmt.Errorf("failed to delete admin %q: %w", email, err)
	}

	logrus.WithFields(logrus.Fields{
		"admin_id": admin.ID,
		"email":    admin.Email,
	}).Info("Admin deleted with products and images")
	return nil
}
