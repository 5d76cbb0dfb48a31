package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/drink"
	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/room"
	"github.com/mmeshcher/venueops/internal/venue"
)

const usage = `usage: venuectl [flags] <group> <command> [args]

  products
  tabs list | closed
  tabs open <table> [owner]
  tabs add <tab> <product>
  tabs inc | dec | rm <tab> <item>
  tabs service | close | delete <tab>
  tabs owner <tab> <name>
  rooms list | active | availability | revenue
  rooms closed [from] [to] [guest]
  rooms start <room> <tier> [guest] [payment]
  rooms finalize | cancel | delete <session>
  drinks list [employee]
  drinks new <employee> <start> <end> [quantity] [goal]
  drinks inc | dec | bonus | unbonus | delete <record>
  drinks goal <record> <goal>
  drinks consume <record> <product>
  drinks item-inc | item-dec | item-rm <record> <item>
  report tabs [from] [to]
  report periods

Dates are YYYY-MM-DD.`

var errUsage = errors.New("invalid arguments")

type command struct {
	v   *venue.Venue
	out io.Writer
	now func() time.Time
}

// run загружает представление заведения и выполняет команду.
func run(ctx context.Context, v *venue.Venue, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usage)
		return errUsage
	}

	if err := v.Load(ctx); err != nil {
		return err
	}

	c := &command{v: v, out: out, now: time.Now}
	group, rest := args[0], args[1:]

	var err error
	switch group {
	case "products":
		err = c.products()
	case "tabs":
		err = c.tabs(ctx, rest)
	case "rooms":
		err = c.rooms(ctx, rest)
	case "drinks":
		err = c.drinks(ctx, rest)
	case "report":
		err = c.report(ctx, rest)
	default:
		err = fmt.Errorf("%w: unknown group %q", errUsage, group)
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintln(out, usage)
	}
	return err
}

func need(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: expected %d arguments, got %d", errUsage, n, len(args))
	}
	return nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func index(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: item index %q", errUsage, s)
	}
	return i, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", errUsage, s)
	}
	return t, nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (c *command) table(header string, rows func(w io.Writer)) error {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	return w.Flush()
}

func (c *command) products() error {
	return c.table("ID\tNAME\tPRICE", func(w io.Writer) {
		for _, p := range c.v.Products() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, money(p.UnitPrice))
		}
	})
}

func (c *command) printTab(t model.Tab) error {
	fmt.Fprintf(c.out, "%s  %s  %s  owner=%q  total=%s  version=%d\n", t.ID, t.Label, t.Status, t.OwnerName, money(t.Total), t.Version)
	return c.table("#\tITEM\tQTY\tPRICE\tLINE", func(w io.Writer) {
		for i, item := range t.Items {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i, item.Description, item.Quantity, money(item.UnitPrice), money(billing.LineTotal(item)))
		}
	})
}

func (c *command) listTabs(tabs []model.Tab) error {
	return c.table("ID\tLABEL\tOWNER\tITEMS\tTOTAL", func(w io.Writer) {
		for _, t := range tabs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", t.ID, t.Label, t.OwnerName, len(t.Items), money(t.Total))
		}
	})
}

func (c *command) tabs(ctx context.Context, args []string) error {
	if err := need(args, 1); err != nil {
		return err
	}
	cmd, args := args[0], args[1:]

	var (
		t   model.Tab
		err error
	)
	switch cmd {
	case "list":
		return c.listTabs(c.v.Tabs())
	case "closed":
		return c.listTabs(c.v.ClosedTabs())
	case "open":
		if err := need(args, 1); err != nil {
			return err
		}
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			return fmt.Errorf("%w: table number %q", errUsage, args[0])
		}
		t, err = c.v.CreateTableTab(ctx, n, arg(args, 1))
	case "add":
		if err := need(args, 2); err != nil {
			return err
		}
		t, err = c.v.AddTabItem(ctx, args[0], args[1])
	case "inc", "dec", "rm":
		if err := need(args, 2); err != nil {
			return err
		}
		idx, convErr := index(args[1])
		if convErr != nil {
			return convErr
		}
		switch cmd {
		case "inc":
			t, err = c.v.IncrementTabItem(ctx, args[0], idx)
		case "dec":
			t, err = c.v.DecrementTabItem(ctx, args[0], idx)
		default:
			t, err = c.v.RemoveTabItem(ctx, args[0], idx)
		}
	case "service":
		if err := need(args, 1); err != nil {
			return err
		}
		t, err = c.v.AddServiceCharge(ctx, args[0])
	case "owner":
		if err := need(args, 2); err != nil {
			return err
		}
		t, err = c.v.SetTabOwner(ctx, args[0], strings.Join(args[1:], " "))
	case "close":
		if err := need(args, 1); err != nil {
			return err
		}
		t, err = c.v.CloseTab(ctx, args[0])
	case "delete":
		if err := need(args, 1); err != nil {
			return err
		}
		return c.v.DeleteTab(ctx, args[0])
	default:
		return fmt.Errorf("%w: unknown tabs command %q", errUsage, cmd)
	}
	if err != nil {
		return err
	}
	return c.printTab(t)
}

func (c *command) listRooms(sessions []model.RoomSession) error {
	now := c.now()
	return c.table("ID\tROOM\tGUEST\tTIER\tSTATUS\tELAPSED\tBILLED", func(w io.Writer) {
		for _, s := range sessions {
			elapsed := room.FormatClock(room.Elapsed(s, now))
			if room.Overrun(s, now) {
				elapsed += " !"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Room, s.GuestName, s.Tier, s.Status, elapsed, money(s.BilledAmount))
		}
	})
}

func (c *command) rooms(ctx context.Context, args []string) error {
	if err := need(args, 1); err != nil {
		return err
	}
	cmd, args := args[0], args[1:]

	var (
		s   model.RoomSession
		err error
	)
	switch cmd {
	case "list":
		return c.listRooms(c.v.Rooms())
	case "active":
		return c.listRooms(c.v.ActiveRooms())
	case "closed":
		from, err := parseDate(arg(args, 0))
		if err != nil {
			return err
		}
		to, err := parseDate(arg(args, 1))
		if err != nil {
			return err
		}
		return c.listRooms(c.v.ClosedRooms(room.ClosedFilter{From: from, To: to, Guest: arg(args, 2)}))
	case "availability":
		busy := c.v.Availability()
		return c.table("ROOM\tSTATUS", func(w io.Writer) {
			for _, label := range room.Labels(c.v.RoomCount()) {
				status := "free"
				if busy[label] {
					status = "occupied"
				}
				fmt.Fprintf(w, "%s\t%s\n", label, status)
			}
		})
	case "revenue":
		_, err := fmt.Fprintln(c.out, money(c.v.RoomsRevenue()))
		return err
	case "start":
		if err := need(args, 2); err != nil {
			return err
		}
		s, err = c.v.StartRoom(ctx, room.NewSessionInput{
			Room:          args[0],
			Tier:          model.DurationTier(args[1]),
			GuestName:     arg(args, 2),
			PaymentMethod: model.PaymentMethod(arg(args, 3)),
		})
	case "finalize":
		if err := need(args, 1); err != nil {
			return err
		}
		s, err = c.v.FinalizeRoom(ctx, args[0])
	case "cancel":
		if err := need(args, 1); err != nil {
			return err
		}
		s, err = c.v.CancelRoom(ctx, args[0])
	case "delete":
		if err := need(args, 1); err != nil {
			return err
		}
		return c.v.DeleteRoom(ctx, args[0])
	default:
		return fmt.Errorf("%w: unknown rooms command %q", errUsage, cmd)
	}
	if err != nil {
		return err
	}
	return c.listRooms([]model.RoomSession{s})
}

func (c *command) listDrinks(records []model.DrinkRecord) error {
	err := c.table("ID\tEMPLOYEE\tPERIOD\tQTY\tGOAL\tCOMMISSION\tBONUS\tCONSUMED\tNET", func(w io.Writer) {
		for _, r := range records {
			s := drink.Summary(r)
			fmt.Fprintf(w, "%s\t%s\t%s..%s\t%d\t%d\t%s\t%d\t%s\t%s\n",
				r.ID, r.EmployeeName,
				r.PeriodStart.Format(time.DateOnly), r.PeriodEnd.Format(time.DateOnly),
				r.Quantity, r.Goal, money(s.Commission), s.BonusCount, money(s.ConsumptionTotal), money(s.NetBalance))
		}
	})
	if err != nil {
		return err
	}
	totals := billing.DrinkTotals(records)
	_, err = fmt.Fprintf(c.out, "total: quantity=%d commission=%s consumption=%s\n", totals.Quantity, money(totals.Commission), money(totals.Consumption))
	return err
}

func (c *command) drinks(ctx context.Context, args []string) error {
	if err := need(args, 1); err != nil {
		return err
	}
	cmd, args := args[0], args[1:]

	var (
		r   model.DrinkRecord
		err error
	)
	switch cmd {
	case "list":
		return c.listDrinks(c.v.Drinks(arg(args, 0)))
	case "new":
		if err := need(args, 3); err != nil {
			return err
		}
		in := drink.NewWeekInput{EmployeeName: args[0]}
		if in.PeriodStart, err = parseDate(args[1]); err != nil {
			return err
		}
		if in.PeriodEnd, err = parseDate(args[2]); err != nil {
			return err
		}
		if s := arg(args, 3); s != "" {
			if in.InitialQuantity, err = strconv.Atoi(s); err != nil {
				return fmt.Errorf("%w: quantity %q", errUsage, s)
			}
		}
		if s := arg(args, 4); s != "" {
			if in.Goal, err = strconv.Atoi(s); err != nil {
				return fmt.Errorf("%w: goal %q", errUsage, s)
			}
		}
		r, err = c.v.CreateDrinkWeek(ctx, in)
	case "inc", "dec", "bonus", "unbonus", "delete":
		if err := need(args, 1); err != nil {
			return err
		}
		switch cmd {
		case "inc":
			r, err = c.v.IncrementDrinkQuantity(ctx, args[0])
		case "dec":
			r, err = c.v.DecrementDrinkQuantity(ctx, args[0])
		case "bonus":
			r, err = c.v.AddBonus(ctx, args[0])
		case "unbonus":
			r, err = c.v.RemoveBonus(ctx, args[0])
		default:
			return c.v.DeleteDrink(ctx, args[0])
		}
	case "goal":
		if err := need(args, 2); err != nil {
			return err
		}
		goal, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("%w: goal %q", errUsage, args[1])
		}
		r, err = c.v.SetDrinkGoal(ctx, args[0], goal)
	case "consume":
		if err := need(args, 2); err != nil {
			return err
		}
		r, err = c.v.AddConsumptionItem(ctx, args[0], args[1])
	case "item-inc", "item-dec", "item-rm":
		if err := need(args, 2); err != nil {
			return err
		}
		idx, convErr := index(args[1])
		if convErr != nil {
			return convErr
		}
		switch cmd {
		case "item-inc":
			r, err = c.v.IncrementConsumptionItem(ctx, args[0], idx)
		case "item-dec":
			r, err = c.v.DecrementConsumptionItem(ctx, args[0], idx)
		default:
			r, err = c.v.RemoveConsumptionItem(ctx, args[0], idx)
		}
	default:
		return fmt.Errorf("%w: unknown drinks command %q", errUsage, cmd)
	}
	if err != nil {
		return err
	}
	return c.listDrinks([]model.DrinkRecord{r})
}

func (c *command) report(ctx context.Context, args []string) error {
	if err := need(args, 1); err != nil {
		return err
	}

	switch args[0] {
	case "tabs":
		from, err := parseDate(arg(args, 1))
		if err != nil {
			return err
		}
		to, err := parseDate(arg(args, 2))
		if err != nil {
			return err
		}
		report, err := c.v.TabsReport(ctx, from, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "closed tabs: %d  total: %s\n", report.Count, money(report.Total))
		return c.table("ID\tLABEL\tCLOSED\tTOTAL", func(w io.Writer) {
			for _, t := range report.Tabs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Label, t.ClosedAt.Format(time.DateTime), money(t.Total))
			}
		})
	case "periods":
		p := c.v.Periods()
		return c.table("PERIOD\tSTART", func(w io.Writer) {
			fmt.Fprintf(w, "today\t%s\n", p.Today.Format(time.DateOnly))
			fmt.Fprintf(w, "week\t%s\n", p.Week.Format(time.DateOnly))
			fmt.Fprintf(w, "month\t%s\n", p.Month.Format(time.DateOnly))
			fmt.Fprintf(w, "year\t%s\n", p.Year.Format(time.DateOnly))
		})
	default:
		return fmt.Errorf("%w: unknown report %q", errUsage, args[0])
	}
}
