package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/torvik/campus-events-client/internal/api"
	"github.com/torvik/campus-events-client/internal/model"
)

// admin dispatches the moderation and analytics subcommands.  The server
// enforces the ADMIN role; a non-admin simply gets the permission error
// back.
func (a *app) admin(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf(`admin: expected a subcommand:
  users | search | role | active | ban | user-events | user-rsvps
  events | approve | reject | edit | rm
  counts | popular | activity | leaderboard`)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "users":
		users, err := a.client.AdminListUsers(a.ctx)
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	case "search":
		fs := flag.NewFlagSet("admin search", flag.ExitOnError)
		q := fs.String("q", "", "free text")
		role := fs.String("role", "", "STUDENT, ORGANIZER or ADMIN")
		status := fs.String("status", "", "active, inactive or banned")
		fs.Parse(rest)
		users, err := a.client.AdminSearchUsers(a.ctx, api.UserSearch{
			Q: *q, Role: strings.ToUpper(*role), Status: *status,
		})
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	case "role":
		if len(rest) < 2 {
			return fmt.Errorf("admin role: usage: admin role <user-id> <role>")
		}
		u, err := a.client.AdminSetRole(a.ctx, rest[0], strings.ToUpper(rest[1]))
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", u.Email, u.Role)
		return nil
	case "active":
		return a.adminToggle(rest, "active", a.client.AdminSetActive)
	case "ban":
		return a.adminToggle(rest, "ban", a.client.AdminSetBanned)
	case "user-events":
		if len(rest) < 1 {
			return fmt.Errorf("admin user-events: a user id is required")
		}
		events, err := a.client.AdminUserEvents(a.ctx, rest[0])
		if err != nil {
			return err
		}
		for _, e := range events {
			fmt.Printf("%s  %-28s  [%s]\n", e.ID, truncate(e.Title, 28), e.ApprovalStatus)
		}
		return nil
	case "user-rsvps":
		if len(rest) < 1 {
			return fmt.Errorf("admin user-rsvps: a user id is required")
		}
		rsvps, err := a.client.AdminUserRsvps(a.ctx, rest[0])
		if err != nil {
			return err
		}
		for _, r := range rsvps {
			fmt.Printf("%-10s  event %s\n", r.Status, r.EventID)
		}
		return nil
	case "events":
		fs := flag.NewFlagSet("admin events", flag.ExitOnError)
		status := fs.String("status", "ALL", "PENDING, APPROVED, REJECTED or ALL")
		query := fs.String("query", "", "free text")
		fs.Parse(rest)
		events, err := a.client.AdminListEvents(a.ctx, strings.ToUpper(*status), *query)
		if err != nil {
			return err
		}
		for _, e := range events {
			fmt.Printf("%s  %-28s  %-8s  by %s\n", e.ID, truncate(e.Title, 28), e.ApprovalStatus, e.OrganizerEmail)
		}
		return nil
	case "approve":
		if len(rest) < 1 {
			return fmt.Errorf("admin approve: an event id is required")
		}
		ev, err := a.client.AdminApproveEvent(a.ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("Approved %q\n", ev.Title)
		return nil
	case "reject":
		fs := flag.NewFlagSet("admin reject", flag.ExitOnError)
		reason := fs.String("reason", "", "why the event was rejected")
		if len(rest) < 1 {
			return fmt.Errorf("admin reject: an event id is required")
		}
		fs.Parse(rest[1:])
		ev, err := a.client.AdminRejectEvent(a.ctx, rest[0], *reason)
		if err != nil {
			return err
		}
		fmt.Printf("Rejected %q\n", ev.Title)
		return nil
	case "edit":
		if len(rest) < 1 {
			return fmt.Errorf("admin edit: an event id is required")
		}
		fs := flag.NewFlagSet("admin edit", flag.ExitOnError)
		title := fs.String("title", "", "new title")
		desc := fs.String("desc", "", "new description")
		when := fs.String("when", "", "new start, local time (2006-01-02T15:04)")
		location := fs.String("location", "", "new venue")
		category := fs.String("category", "", "new category label")
		fs.Parse(rest[1:])

		cur, err := a.client.GetEvent(a.ctx, rest[0])
		if err != nil {
			return err
		}
		in := api.EventInput{
			Title:       cur.Title,
			Description: cur.Description,
			StartTime:   cur.StartTime,
			Location:    cur.Location,
			Category:    cur.Category,
		}
		if *title != "" {
			in.Title = *title
		}
		if *desc != "" {
			in.Description = *desc
		}
		if *when != "" {
			ts, err := time.ParseInLocation("2006-01-02T15:04", *when, time.Local)
			if err != nil {
				return fmt.Errorf("admin edit: -when must look like 2006-01-02T15:04")
			}
			in.StartTime = model.Time{Time: ts}
		}
		if *location != "" {
			in.Location = *location
		}
		if *category != "" {
			in.Category = *category
		}
		ev, err := a.client.AdminEditEvent(a.ctx, rest[0], in)
		if err != nil {
			return err
		}
		fmt.Printf("Updated %q\n", ev.Title)
		return nil
	case "rm":
		if len(rest) < 1 {
			return fmt.Errorf("admin rm: an event id is required")
		}
		if err := a.client.AdminDeleteEvent(a.ctx, rest[0]); err != nil {
			return err
		}
		fmt.Println("Event deleted.")
		return nil
	case "counts":
		c, err := a.client.AdminCounts(a.ctx)
		if err != nil {
			return err
		}
		fmt.Printf("users=%d events=%d approved=%d pending=%d rsvps=%d\n",
			c.Users, c.EventsTotal, c.EventsApproved, c.EventsPending, c.RsvpsTotal)
		return nil
	case "popular":
		events, err := a.client.AdminPopularEvents(a.ctx, 10)
		if err != nil {
			return err
		}
		for i, e := range events {
			fmt.Printf("%2d. %-28s  %d RSVPs\n", i+1, truncate(e.Title, 28), e.RsvpCount)
		}
		return nil
	case "activity":
		records, err := a.client.AdminRecentActivity(a.ctx, 20)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Printf("%s  %-16s %s\n", r.Timestamp.Local().Format("2006-01-02 15:04"), r.Action, r.Description)
		}
		return nil
	case "leaderboard":
		stats, err := a.client.AdminOrganizerLeaderboard(a.ctx, 10)
		if err != nil {
			return err
		}
		for i, s := range stats {
			fmt.Printf("%2d. %-28s  %d events, %d RSVPs\n", i+1, s.Email, s.EventsCreated, s.TotalRsvps)
		}
		return nil
	default:
		return fmt.Errorf("admin: unknown subcommand %q", cmd)
	}
}

func (a *app) adminToggle(rest []string, name string, set func(context.Context, string, bool) (*model.User, error)) error {
	if len(rest) < 2 || (rest[1] != "true" && rest[1] != "false") {
		return fmt.Errorf("admin %s: usage: admin %s <user-id> true|false", name, name)
	}
	u, err := set(a.ctx, rest[0], rest[1] == "true")
	if err != nil {
		return err
	}
	fmt.Printf("%s: active=%v banned=%v\n", u.Email, u.Active, u.Banned)
	return nil
}

func printUsers(users []model.User) {
	for _, u := range users {
		fmt.Printf("%s  %-28s  %-9s active=%v banned=%v\n", u.ID, u.Email, u.Role, u.Active, u.Banned)
	}
}
