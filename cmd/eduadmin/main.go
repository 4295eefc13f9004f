// Command eduadmin is a small terminal front door to the school
// administration backend: it logs in, lists and registers students, and
// browses partners, courses and academic years. It exists both as a usable
// tool and as a reference for composing the SDK.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/studioerp/odoo.go"
	"github.com/studioerp/odoo.go/edu"
	"github.com/studioerp/odoo.go/pkg/config"
	"github.com/studioerp/odoo.go/pkg/models"
)

const usage = `usage: eduadmin [-config file] <command> [args]

commands:
  login <username> <password>
  logout
  whoami
  students list [limit [offset]]
  students search <term>
  students add <name> [email [phone]]
  partners customers|suppliers
  courses list
  years list
  years current
  enroll <student-id> <course-id> <year-id>
`

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// a local .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = defaultSnapshotPath()
	}

	client, err := odoo.New(cfg)
	if err != nil {
		fatal(err)
	}
	defer client.Close()

	services := edu.New(client, cfg)
	ctx := context.Background()

	if err := run(ctx, client, services, cfg, flag.Args()); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, client *odoo.Client, services *edu.Services, cfg *config.Config, args []string) error {
	switch args[0] {
	case "login":
		if len(args) == 3 {
			return login(ctx, client, args[1], args[2])
		}
		if cfg.Username != "" {
			return login(ctx, client, cfg.Username, cfg.Password)
		}
		return fmt.Errorf("login needs <username> <password> or a configured credential")

	case "logout":
		client.Logout(ctx)
		fmt.Println("logged out")
		return nil

	case "whoami":
		if !client.CheckAuth() {
			fmt.Println("not logged in")
			return nil
		}
		sess := client.Session().Current()
		fmt.Printf("%s (uid %d) on %s\n", sess.Username, sess.UserID, sess.Database)
		return nil

	case "students":
		return runStudents(ctx, services, args[1:])

	case "partners":
		return runPartners(ctx, services, args[1:])

	case "courses":
		set, err := services.Courses.GetAll(ctx, 0, 0)
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintln(w, "ID\tCODE\tNAME\tCREDITS\tROOM")
		for _, c := range set.Records {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", c.ID, c.Code, c.Name, c.Credits, c.Room)
		}
		return w.Flush()

	case "years":
		if len(args) > 1 && args[1] == "current" {
			year, err := services.Years.GetCurrent(ctx)
			if err != nil {
				return err
			}
			if year == nil {
				fmt.Println("no current academic year")
				return nil
			}
			fmt.Printf("%s (%s to %s)\n", year.Name, year.StartDate, year.EndDate)
			return nil
		}
		set, err := services.Years.GetAll(ctx, 0, 0)
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tCURRENT")
		for _, y := range set.Records {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n", y.ID, y.Name, y.StartDate, y.EndDate, y.IsCurrent)
		}
		return w.Flush()

	case "enroll":
		if len(args) != 4 {
			return fmt.Errorf("enroll needs <student-id> <course-id> <year-id>")
		}
		studentID, courseID, yearID := parseID(args[1]), parseID(args[2]), parseID(args[3])
		id, err := services.Enrollments.EnrollStudent(ctx, studentID, courseID, yearID)
		if err != nil {
			return err
		}
		fmt.Printf("enrolled, enrollment id %d\n", id)
		return nil
	}

	flag.Usage()
	return fmt.Errorf("unknown command %q", args[0])
}

func runStudents(ctx context.Context, services *edu.Services, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		limit, offset := 50, 0
		if len(args) > 1 {
			limit = int(parseID(args[1]))
		}
		if len(args) > 2 {
			offset = int(parseID(args[2]))
		}
		set, err := services.Students.GetAll(ctx, limit, offset)
		if err != nil {
			return err
		}
		printStudents(set)
		return nil

	case "search":
		if len(args) != 2 {
			return fmt.Errorf("students search needs <term>")
		}
		set, err := services.Students.Search(ctx, args[1])
		if err != nil {
			return err
		}
		printStudents(set)
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("students add needs <name> [email [phone]]")
		}
		data := edu.StudentFormData{Name: args[1]}
		if len(args) > 2 {
			data.Email = args[2]
		}
		if len(args) > 3 {
			data.Phone = args[3]
		}
		id, err := services.Students.Create(ctx, data)
		if err != nil {
			return err
		}
		fmt.Printf("created student %d\n", id)
		return nil
	}
	return fmt.Errorf("unknown students command %q", args[0])
}

func runPartners(ctx context.Context, services *edu.Services, args []string) error {
	kind := "customers"
	if len(args) > 0 {
		kind = args[0]
	}
	var (
		set *models.RecordSet[models.Partner]
		err error
	)
	switch kind {
	case "customers":
		set, err = services.Partners.GetCustomers(ctx, 50, 0)
	case "suppliers":
		set, err = services.Partners.GetSuppliers(ctx, 50, 0)
	default:
		return fmt.Errorf("unknown partners command %q", kind)
	}
	if err != nil {
		return err
	}
	w := table()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, p := range set.Records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.Phone)
	}
	fmt.Fprintf(w, "(%d of %d)\n", len(set.Records), set.TotalCount)
	return w.Flush()
}

func login(ctx context.Context, client *odoo.Client, username, password string) error {
	sess, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (uid %d)\n", sess.Username, sess.UserID)
	return nil
}

func printStudents(set *models.RecordSet[models.Student]) {
	w := table()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tGUARDIAN")
	for _, s := range set.Records {
		extra := s.Extra()
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, s.Phone, extra.GuardianName)
	}
	fmt.Fprintf(w, "(%d of %d)\n", len(set.Records), set.TotalCount)
	_ = w.Flush()
}

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fatal(fmt.Errorf("not a number: %s", s))
	}
	return id
}

func defaultSnapshotPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".eduadmin-session.json"
	}
	dir = filepath.Join(dir, "eduadmin")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ".eduadmin-session.json"
	}
	return filepath.Join(dir, "session.json")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "eduadmin:", err)
	os.Exit(1)
}
