// admin is the operations panel CLI: its own login context plus notification
// broadcast, withdrawal processing, and return handling.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"moda-marketplace/client/internal/admin"
	"moda-marketplace/client/internal/app"
	"moda-marketplace/client/internal/auth"
	"moda-marketplace/client/internal/telemetry"
)

func main() {
	cmd := flag.String("cmd", "", "Command: login|logout|notifications|notify|withdrawals|complete-withdrawal|returns|approve-return|reject-return")
	identifier := flag.String("id", "", "Admin identifier (login)")
	password := flag.String("password", "", "Admin password (login)")
	title := flag.String("title", "", "Notification title (notify)")
	body := flag.String("body", "", "Notification body (notify)")
	audience := flag.String("audience", "all", "Notification audience: users|brands|all (notify)")
	status := flag.String("status", "", "Status filter (withdrawals, returns)")
	withdrawalID := flag.String("withdrawal", "", "Withdrawal ID (complete-withdrawal)")
	returnID := flag.String("return", "", "Return ID (approve-return, reject-return)")
	reason := flag.String("reason", "", "Rejection reason (reject-return)")
	flag.Parse()

	ctx := context.Background()
	a, err := app.New(ctx, app.Options{AdminKeys: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer a.Close(ctx)

	panel := admin.NewClient(a.API)
	flow := auth.NewFlow(panel, a.Sessions)

	var runErr error
	switch *cmd {
	case "login":
		runErr = login(ctx, flow, a, *identifier, *password)
	case "logout":
		a.Sessions.Logout()
		telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventLogout, Source: "admin"})
		fmt.Println("Logged out.")
	case "notifications":
		runErr = printJSON(func() (interface{}, error) { return panel.Notifications(ctx) })
	case "notify":
		if *title == "" || *body == "" {
			runErr = fmt.Errorf("--title and --body required")
			break
		}
		sent, err := panel.SendNotification(ctx, admin.NotificationDraft{
			Title:    *title,
			Body:     *body,
			Audience: *audience,
		})
		if err != nil {
			runErr = err
			break
		}
		fmt.Printf("Sent notification %s to %s.\n", sent.ID, sent.Audience)
	case "withdrawals":
		runErr = printJSON(func() (interface{}, error) { return panel.Withdrawals(ctx, *status) })
	case "complete-withdrawal":
		if *withdrawalID == "" {
			runErr = fmt.Errorf("--withdrawal required")
			break
		}
		runErr = panel.CompleteWithdrawal(ctx, *withdrawalID)
		if runErr == nil {
			fmt.Println("Withdrawal completed.")
		}
	case "returns":
		runErr = printJSON(func() (interface{}, error) { return panel.Returns(ctx, *status) })
	case "approve-return":
		if *returnID == "" {
			runErr = fmt.Errorf("--return required")
			break
		}
		runErr = panel.ApproveReturn(ctx, *returnID)
		if runErr == nil {
			fmt.Println("Return approved.")
		}
	case "reject-return":
		if *returnID == "" || *reason == "" {
			runErr = fmt.Errorf("--return and --reason required")
			break
		}
		runErr = panel.RejectReturn(ctx, *returnID, *reason)
		if runErr == nil {
			fmt.Println("Return rejected.")
		}
	default:
		runErr = fmt.Errorf("unknown command %q", *cmd)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		os.Exit(1)
	}
}

func login(ctx context.Context, flow *auth.Flow, a *app.App, identifier, password string) error {
	if identifier == "" || password == "" {
		return fmt.Errorf("--id and --password required")
	}
	state, err := flow.Submit(ctx, identifier, password)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for state == auth.StateOTPPending {
		wait, remaining := flow.ResendWait()
		fmt.Printf("Enter OTP code (resend in %ds, %d left), or r to resend: ", int(wait.Seconds()), remaining)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		input := strings.TrimSpace(line)
		if input == "r" {
			if err := flow.Resend(ctx); err != nil {
				fmt.Println("Resend:", err)
			}
			continue
		}
		state, err = flow.Verify(ctx, input)
		if err != nil {
			fmt.Println("Verify:", err)
			continue
		}
	}

	telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventLogin, Source: "admin"})
	session, _ := a.Sessions.Session()
	fmt.Printf("Logged in as %s.\n", session.User.Username)
	return nil
}

func printJSON(load func() (interface{}, error)) error {
	data, err := load()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
