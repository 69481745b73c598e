// dashboard is the brand-facing CLI: login with optional OTP, then the named
// dashboard views plus order tracking and SKU updates over the SDK.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"moda-marketplace/client/internal/app"
	"moda-marketplace/client/internal/auth"
	"moda-marketplace/client/internal/brand"
	"moda-marketplace/client/internal/catalog"
	"moda-marketplace/client/internal/dashboard"
	"moda-marketplace/client/internal/orders"
	"moda-marketplace/client/internal/store"
	"moda-marketplace/client/internal/telemetry"
)

func main() {
	cmd := flag.String("cmd", "view", "Command: login|logout|view|set-tracking|set-sku")
	email := flag.String("email", "", "Brand email (login)")
	password := flag.String("password", "", "Brand password (login)")
	view := flag.String("view", dashboard.ViewOrders, "View: orders|products|stats|profile|security")
	orderID := flag.String("order", "", "Order ID (set-tracking)")
	trackingNumber := flag.String("number", "", "Tracking number (set-tracking)")
	trackingLink := flag.String("link", "", "Tracking link (set-tracking)")
	itemID := flag.String("item", "", "Order item ID (set-sku)")
	sku := flag.String("sku", "", "SKU value (set-sku)")
	flag.Parse()

	ctx := context.Background()
	a, err := app.New(ctx, app.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer a.Close(ctx)

	brands := brand.NewClient(a.API)
	flow := auth.NewFlow(brands, a.Sessions)

	var runErr error
	switch *cmd {
	case "login":
		runErr = login(ctx, flow, a, *email, *password)
	case "logout":
		a.Sessions.Logout()
		telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventLogout, Source: "dashboard"})
		fmt.Println("Logged out.")
	case "view":
		runErr = showView(ctx, a, brands, *view)
	case "set-tracking":
		if *orderID == "" {
			runErr = fmt.Errorf("--order required")
			break
		}
		upd := orders.TrackingUpdate{}
		if *trackingNumber != "" {
			upd.TrackingNumber = trackingNumber
		}
		if *trackingLink != "" {
			upd.TrackingLink = trackingLink
		}
		runErr = orders.NewClient(a.API).UpdateTracking(ctx, *orderID, upd)
	case "set-sku":
		if *itemID == "" || *sku == "" {
			runErr = fmt.Errorf("--item and --sku required")
			break
		}
		runErr = orders.NewClient(a.API).UpdateItemSKU(ctx, *itemID, *sku)
	default:
		runErr = fmt.Errorf("unknown command %q", *cmd)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		os.Exit(1)
	}
}

// login drives the flow through the optional OTP challenge, prompting for the
// code on stdin. Typing "r" requests a resend when the countdown allows it.
func login(ctx context.Context, flow *auth.Flow, a *app.App, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password required")
	}
	state, err := flow.Submit(ctx, email, password)
	if err != nil {
		return err
	}
	telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventLogin, Source: "dashboard"})

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
			} else {
				telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventOTPResend, Source: "dashboard"})
			}
			continue
		}
		state, err = flow.Verify(ctx, input)
		if err != nil {
			fmt.Println("Verify:", err)
			continue
		}
		telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventOTPVerified, Source: "dashboard"})
	}

	session, _ := a.Sessions.Session()
	fmt.Printf("Logged in as %s.\n", session.User.Username)
	return nil
}

// showView runs one dashboard view load through the shell so cached payloads
// render first and a late result cannot clobber a newer navigation.
func showView(ctx context.Context, a *app.App, brands *brand.Client, view string) error {
	if !a.Sessions.Authenticated() {
		return fmt.Errorf("not logged in; run -cmd login first")
	}

	ordersClient := orders.NewClient(a.API)
	catalogClient := catalog.NewClient(a.API)
	loaders := map[string]dashboard.Loader{
		dashboard.ViewOrders: func(ctx context.Context) (interface{}, error) {
			return ordersClient.BrandOrders(ctx)
		},
		dashboard.ViewProducts: func(ctx context.Context) (interface{}, error) {
			return catalogClient.BrandProducts(ctx)
		},
		dashboard.ViewStats: func(ctx context.Context) (interface{}, error) {
			list, err := ordersClient.BrandOrders(ctx)
			if err != nil {
				return nil, err
			}
			return orders.Aggregate(list), nil
		},
		dashboard.ViewProfile: func(ctx context.Context) (interface{}, error) {
			return brands.Profile(ctx)
		},
		dashboard.ViewSecurity: func(ctx context.Context) (interface{}, error) {
			session, _ := a.Sessions.Session()
			return session.User, nil
		},
	}

	var cache dashboard.ViewCache
	if sq, ok := a.Store.(*store.SQLite); ok {
		cache = sq
	}

	done := make(chan error, 2)
	shell := dashboard.NewShell(loaders, cache, func(u dashboard.Update) {
		if u.Err != nil {
			done <- u.Err
			return
		}
		out, err := json.MarshalIndent(u.Data, "", "  ")
		if err != nil {
			done <- err
			return
		}
		if u.Stale {
			fmt.Println("(cached)")
			fmt.Println(string(out))
			return
		}
		fmt.Println(string(out))
		done <- nil
	})
	defer shell.Close()

	shell.Navigate(ctx, view)
	telemetry.EmitAsync(a.Emitter, &telemetry.Event{
		EventType: telemetry.EventViewChange,
		Source:    "dashboard",
		Attrs:     map[string]string{"view": view},
	})
	return <-done
}
