// shop is the consumer CLI: signup and login with optional OTP, email
// verification, onboarding preferences, catalog browsing, favorites, friends,
// checkout payments, orders, and 2FA settings over the SDK.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"moda-marketplace/client/internal/account"
	"moda-marketplace/client/internal/app"
	"moda-marketplace/client/internal/auth"
	"moda-marketplace/client/internal/catalog"
	"moda-marketplace/client/internal/friends"
	"moda-marketplace/client/internal/orders"
	"moda-marketplace/client/internal/payments"
	"moda-marketplace/client/internal/telemetry"
)

func main() {
	cmd := flag.String("cmd", "", "Command: register|login|logout|verify-email|forgot|reset|profile|onboard|search|recommend|recommend-friend|favorites|like|friends|friend-request|friend-accept|friend-reject|friend-cancel|requests|unfriend|user-search|user-profile|pay|pay-status|orders|2fa-enable|2fa-disable|check")
	username := flag.String("username", "", "Username (register)")
	email := flag.String("email", "", "Email (register, verify-email)")
	identifier := flag.String("id", "", "Email or username (login, forgot, check)")
	password := flag.String("password", "", "Password (register, login, reset)")
	code := flag.String("code", "", "Verification code (verify-email)")
	token := flag.String("token", "", "Reset token (reset)")
	query := flag.String("q", "", "Search query (search)")
	categoryID := flag.String("category", "", "Category filter (search)")
	styleID := flag.String("style", "", "Style filter (search)")
	productID := flag.String("product", "", "Product ID (like)")
	gender := flag.String("gender", "", "Gender (onboard)")
	size := flag.String("size", "", "Selected size (onboard)")
	brandIDs := flag.String("brands", "", "Comma-separated brand IDs (onboard)")
	styleIDs := flag.String("styles", "", "Comma-separated style IDs (onboard)")
	field := flag.String("field", "username", "Field for availability check: username|email (check)")
	userID := flag.String("user", "", "User ID (recommend-friend, unfriend, user-profile)")
	requestID := flag.String("request", "", "Friend request ID (friend-accept, friend-reject, friend-cancel)")
	amount := flag.Float64("amount", 0, "Payment amount (pay)")
	currency := flag.String("currency", "RUB", "Payment currency (pay)")
	returnURL := flag.String("return-url", "", "Redirect URL after payment (pay)")
	items := flag.String("items", "", "Cart items as product:size:qty, comma-separated (pay)")
	paymentID := flag.String("payment", "", "Payment ID (pay-status)")
	flag.Parse()

	ctx := context.Background()
	a, err := app.New(ctx, app.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer a.Close(ctx)

	accounts := account.NewClient(a.API)
	flow := auth.NewFlow(accounts, a.Sessions)

	var runErr error
	switch *cmd {
	case "register":
		runErr = register(ctx, accounts, a, *username, *email, *password)
	case "login":
		runErr = login(ctx, flow, a, *identifier, *password)
	case "logout":
		if err := accounts.Logout(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "server logout:", err)
		}
		a.Sessions.Logout()
		telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventLogout, Source: "shop"})
		fmt.Println("Logged out.")
	case "verify-email":
		if *code == "" {
			runErr = accounts.RequestEmailVerification(ctx)
			if runErr == nil {
				fmt.Println("Verification code sent.")
			}
			break
		}
		runErr = accounts.VerifyEmail(ctx, *email, *code)
		if runErr == nil {
			fmt.Println("Email verified.")
		}
	case "forgot":
		runErr = accounts.ForgotPassword(ctx, *identifier)
		if runErr == nil {
			fmt.Println("If the account exists, a reset link was sent.")
		}
	case "reset":
		runErr = accounts.ResetPassword(ctx, *token, *password)
		if runErr == nil {
			fmt.Println("Password reset.")
		}
	case "profile":
		runErr = printJSON(func() (interface{}, error) { return accounts.Profile(ctx) })
	case "onboard":
		runErr = onboard(ctx, accounts, *gender, *size, *brandIDs, *styleIDs)
	case "search":
		runErr = printJSON(func() (interface{}, error) {
			return catalog.NewClient(a.API).Search(ctx, *query, catalog.SearchOptions{
				CategoryID: *categoryID,
				StyleID:    *styleID,
			})
		})
	case "recommend":
		runErr = printJSON(func() (interface{}, error) {
			return catalog.NewClient(a.API).Recommendations(ctx)
		})
	case "recommend-friend":
		if *userID == "" {
			runErr = fmt.Errorf("--user required")
			break
		}
		runErr = printJSON(func() (interface{}, error) {
			return catalog.NewClient(a.API).RecommendationsForFriend(ctx, *userID)
		})
	case "favorites":
		runErr = printJSON(func() (interface{}, error) {
			return catalog.NewClient(a.API).Favorites(ctx)
		})
	case "like":
		if *productID == "" {
			runErr = fmt.Errorf("--product required")
			break
		}
		liked, err := catalog.NewClient(a.API).ToggleFavorite(ctx, *productID)
		if err != nil {
			runErr = err
			break
		}
		if liked {
			fmt.Println("Liked.")
		} else {
			fmt.Println("Unliked.")
		}
	case "friends":
		runErr = printJSON(func() (interface{}, error) {
			return friends.NewClient(a.API).Friends(ctx)
		})
	case "friend-request":
		if *identifier == "" {
			runErr = fmt.Errorf("--id required")
			break
		}
		runErr = friends.NewClient(a.API).SendRequest(ctx, *identifier)
		if runErr == nil {
			fmt.Println("Friend request sent.")
		}
	case "friend-accept", "friend-reject", "friend-cancel":
		runErr = friendRequestAction(ctx, friends.NewClient(a.API), *cmd, *requestID)
	case "requests":
		runErr = printJSON(func() (interface{}, error) {
			fc := friends.NewClient(a.API)
			sent, err := fc.SentRequests(ctx)
			if err != nil {
				return nil, err
			}
			received, err := fc.ReceivedRequests(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"sent": sent, "received": received}, nil
		})
	case "unfriend":
		if *userID == "" {
			runErr = fmt.Errorf("--user required")
			break
		}
		runErr = friends.NewClient(a.API).Unfriend(ctx, *userID)
		if runErr == nil {
			fmt.Println("Friend removed.")
		}
	case "user-search":
		runErr = printJSON(func() (interface{}, error) {
			return friends.NewClient(a.API).SearchUsers(ctx, *query)
		})
	case "user-profile":
		if *userID == "" {
			runErr = fmt.Errorf("--user required")
			break
		}
		runErr = printJSON(func() (interface{}, error) {
			return friends.NewClient(a.API).Profile(ctx, *userID)
		})
	case "pay":
		runErr = pay(ctx, payments.NewClient(a.API), *amount, *currency, *returnURL, *items)
	case "pay-status":
		if *paymentID == "" {
			runErr = fmt.Errorf("--payment required")
			break
		}
		status, err := payments.NewClient(a.API).Status(ctx, *paymentID)
		if err != nil {
			runErr = err
			break
		}
		fmt.Println("Payment status:", status)
	case "orders":
		runErr = printJSON(func() (interface{}, error) {
			return orders.NewClient(a.API).Orders(ctx)
		})
	case "2fa-enable":
		runErr = accounts.Enable2FA(ctx)
		if runErr == nil {
			fmt.Println("2FA enabled. Next login will require a code.")
		}
	case "2fa-disable":
		runErr = disable2FA(ctx, flow)
	case "check":
		available, err := accounts.CheckAvailability(ctx, *field, *identifier)
		if err != nil {
			runErr = err
			break
		}
		fmt.Printf("%s %q available: %v\n", *field, *identifier, available)
	default:
		runErr = fmt.Errorf("unknown command %q", *cmd)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		os.Exit(1)
	}
}

func register(ctx context.Context, accounts *account.Client, a *app.App, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("--username, --email and --password required")
	}
	res, err := accounts.Register(ctx, account.Registration{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	if err := a.Sessions.SetSession(res.Token, res.ExpiresAt, res.User); err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s. Check %s for a verification code.\n", res.User.Username, res.User.Email)
	return nil
}

func login(ctx context.Context, flow *auth.Flow, a *app.App, identifier, password string) error {
	if identifier == "" || password == "" {
		return fmt.Errorf("--id and --password required")
	}
	state, err := flow.Submit(ctx, identifier, password)
	if err != nil {
		return err
	}
	if state == auth.StateOTPPending {
		telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventLoginOTP, Source: "shop"})
		if err := promptOTP(ctx, flow); err != nil {
			return err
		}
	}
	telemetry.EmitAsync(a.Emitter, &telemetry.Event{EventType: telemetry.EventLogin, Source: "shop"})
	session, _ := a.Sessions.Session()
	fmt.Printf("Logged in as %s.\n", session.User.Username)
	return nil
}

// promptOTP reads codes from stdin until the flow authenticates. A countdown
// ticker prints the seconds left before a resend is allowed.
func promptOTP(ctx context.Context, flow *auth.Flow) error {
	wait, _ := flow.ResendWait()
	countdown := auth.NewCountdown(wait, time.Second)
	go func() {
		for remaining := range countdown.C {
			if remaining%15 == 0 && remaining > 0 {
				fmt.Printf("\n(resend available in %ds)\n", remaining)
			}
		}
	}()
	defer countdown.Stop()

	reader := bufio.NewReader(os.Stdin)
	for flow.State() == auth.StateOTPPending {
		_, remaining := flow.ResendWait()
		fmt.Printf("Enter OTP code (%d resends left), or r to resend: ", remaining)
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
		if _, err := flow.Verify(ctx, input); err != nil {
			fmt.Println("Verify:", err)
		}
	}
	return nil
}

func disable2FA(ctx context.Context, flow *auth.Flow) error {
	if _, err := flow.BeginDisable(ctx); err != nil {
		return err
	}
	reader := bufio.NewReader(os.Stdin)
	for flow.State() == auth.StateDisabling {
		fmt.Print("Enter OTP code to confirm disabling 2FA: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if _, err := flow.ConfirmDisable(ctx, strings.TrimSpace(line)); err != nil {
			fmt.Println("Confirm:", err)
		}
	}
	fmt.Println("2FA disabled.")
	return nil
}

func onboard(ctx context.Context, accounts *account.Client, gender, size, brandIDs, styleIDs string) error {
	if gender != "" || size != "" {
		upd := account.ProfileUpdate{}
		if gender != "" {
			upd.Gender = &gender
		}
		if size != "" {
			upd.SelectedSize = &size
		}
		if _, err := accounts.UpdateProfile(ctx, upd); err != nil {
			return err
		}
	}
	if brandIDs != "" {
		ids, err := parseIntList(brandIDs)
		if err != nil {
			return fmt.Errorf("--brands: %w", err)
		}
		if err := accounts.SetFavoriteBrands(ctx, ids); err != nil {
			return err
		}
	}
	if styleIDs != "" {
		if err := accounts.SetFavoriteStyles(ctx, strings.Split(styleIDs, ",")); err != nil {
			return err
		}
	}
	fmt.Println("Preferences saved.")
	return nil
}

func friendRequestAction(ctx context.Context, fc *friends.Client, cmd, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("--request required")
	}
	switch cmd {
	case "friend-accept":
		if err := fc.AcceptRequest(ctx, requestID); err != nil {
			return err
		}
		fmt.Println("Friend request accepted.")
	case "friend-reject":
		if err := fc.RejectRequest(ctx, requestID); err != nil {
			return err
		}
		fmt.Println("Friend request rejected.")
	case "friend-cancel":
		if err := fc.CancelRequest(ctx, requestID); err != nil {
			return err
		}
		fmt.Println("Friend request cancelled.")
	}
	return nil
}

func pay(ctx context.Context, pc *payments.Client, amount float64, currency, returnURL, items string) error {
	if amount <= 0 || returnURL == "" || items == "" {
		return fmt.Errorf("--amount, --return-url and --items required")
	}
	cart, err := parseCartItems(items)
	if err != nil {
		return fmt.Errorf("--items: %w", err)
	}
	url, err := pc.Create(ctx, payments.PaymentCreate{
		Amount:      payments.Amount{Value: amount, Currency: currency},
		Description: fmt.Sprintf("Order of %d items", len(cart)),
		ReturnURL:   returnURL,
		Items:       cart,
	})
	if err != nil {
		return err
	}
	fmt.Println("Complete the payment at:", url)
	return nil
}

// parseCartItems decodes the --items flag: product:size:qty entries separated
// by commas, quantity defaulting to 1 when omitted.
func parseCartItems(s string) ([]payments.CartItem, error) {
	parts := strings.Split(s, ",")
	cart := make([]payments.CartItem, 0, len(parts))
	for _, p := range parts {
		fields := strings.Split(strings.TrimSpace(p), ":")
		if len(fields) < 2 {
			return nil, fmt.Errorf("want product:size[:qty], got %q", p)
		}
		item := payments.CartItem{ProductID: fields[0], Size: fields[1], Quantity: 1}
		if len(fields) > 2 {
			qty, err := strconv.Atoi(fields[2])
			if err != nil || qty < 1 {
				return nil, fmt.Errorf("bad quantity in %q", p)
			}
			item.Quantity = qty
		}
		cart = append(cart, item)
	}
	return cart, nil
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
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
