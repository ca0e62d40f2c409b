package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "clickship/internal/cli"
	"clickship/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func renderDashboard(st game.State) error {
	b := st.CurrentBusiness()
	if b == nil {
		printWarn("No business selected. Run `clickship new` or `clickship select`.")
		return nil
	}

	accent.Printf("\n== %s (%s) ==\n", strings.ToUpper(b.Name), b.ProductType)
	fmt.Printf("Money:        %s\n", colorizeMoney(b.Money))
	fmt.Printf("Reputation:   %d/%d\n", b.Reputation, game.MaxReputation)
	fmt.Printf("Inventory:    %d\n", st.Inventory)
	fmt.Printf("Game:         %s\n", st.GameState)

	fmt.Println()
	accent.Println("Operations")
	fmt.Printf("Production:   %s\n", cycleLine(st.IsProducing, st.ProductionProgress))
	fmt.Printf("Shipping:     %s\n", cycleLine(st.IsShipping, st.ShippingProgress))

	pending := 0
	for _, o := range st.Orders {
		if o.Status == game.OrderPending {
			pending++
		}
	}
	fmt.Printf("Pending:      %d orders\n", pending)

	s := st.Statistics
	fmt.Println()
	accent.Println("Statistics")
	fmt.Printf("%-18s %10s\n", "Orders received", comma(s.OrdersReceived))
	fmt.Printf("%-18s %10s\n", "Orders shipped", comma(s.OrdersShipped))
	fmt.Printf("%-18s %10s\n", "Orders expired", comma(s.OrdersExpired))
	fmt.Printf("%-18s %10s\n", "Products built", comma(s.ProductsCreated))
	fmt.Printf("%-18s %10s\n", "Revenue (net)", money(s.TotalRevenue))
	fmt.Printf("%-18s %10s\n", "Spent", money(s.TotalSpent))
	fmt.Printf("%-18s %10s\n", "Earned", money(s.TotalMoneyEarned))
	fmt.Println()
	return nil
}

func renderBusinesses(st game.State) {
	accent.Println("\n== BUSINESSES ==")
	if len(st.Businesses) == 0 {
		printInfo("No businesses yet.")
		return
	}
	fmt.Printf("  %-36s %-20s %-14s %10s %5s\n", "ID", "NAME", "PRODUCT", "MONEY", "REP")
	for _, b := range st.Businesses {
		marker := " "
		if b.ID == st.CurrentBusinessID {
			marker = "*"
		}
		fmt.Printf("%s %-36s %-20s %-14s %10s %5d\n",
			marker,
			b.ID,
			truncate(b.Name, 20),
			truncate(b.ProductType, 14),
			money(b.Money),
			b.Reputation,
		)
	}
	fmt.Println()
}

func renderOrders(orders []game.Order, now time.Time) {
	accent.Println("\n== ORDERS ==")
	if len(orders) == 0 {
		printInfo("No orders right now.")
		return
	}
	fmt.Printf("%-10s %-12s %8s %4s %10s\n", "ID", "STATUS", "VALUE", "CPX", "DUE IN")
	for _, o := range orders {
		due := "-"
		if !o.Status.Terminal() {
			due = o.Deadline.Sub(now).Round(time.Second).String()
		}
		fmt.Printf("%-10s %-12s %8s %4d %10s\n",
			shortID(o.ID),
			colorizeStatus(o.Status),
			money(o.Value),
			o.Complexity,
			due,
		)
	}
	fmt.Println()
}

func renderTechnologies(techs []cl.TechnologyView) {
	accent.Println("\n== TECHNOLOGIES ==")
	fmt.Printf("%-7s %-3s %-18s %5s %-26s %10s\n", "ID", "", "NAME", "LEVEL", "STAGE", "NEXT COST")
	for _, t := range techs {
		next := money(t.Cost)
		if t.Purchased {
			next = money(t.UpgradeCost)
		}
		fmt.Printf("%-7s %-3s %-18s %5d %-26s %10s\n",
			t.ID,
			t.Icon,
			truncate(t.Name, 18),
			t.Level,
			truncate(t.LevelName, 26),
			next,
		)
	}
	fmt.Println()
}

func renderLeaderboard(entries []game.LeaderboardEntry, title string) {
	accent.Printf("\n== %s ==\n", strings.ToUpper(title))
	if len(entries) == 0 {
		printInfo("No leaderboard rows yet.")
		return
	}
	fmt.Printf("%-6s %-20s %12s %10s %12s\n", "RANK", "BUSINESS", "EARNED", "SHIPPED", "MONEY")
	for i, row := range entries {
		fmt.Printf("%-6d %-20s %12s %10s %12s\n",
			i+1,
			truncate(row.BusinessName, 20),
			money(row.TotalMoneyEarned),
			comma(row.OrdersShipped),
			money(row.Money),
		)
	}
	fmt.Println()
}

func statusLine(st game.State) string {
	b := st.CurrentBusiness()
	if b == nil || st.GameState != game.GameStatePlaying {
		return fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), st.GameState)
	}
	return fmt.Sprintf("[%s] %s money=%s rep=%d inv=%d build=%s ship=%s shipped=%d",
		time.Now().Format("15:04:05"),
		truncate(b.Name, 16),
		money(b.Money),
		b.Reputation,
		st.Inventory,
		progressBar(st.IsProducing, st.ProductionProgress, 10),
		progressBar(st.IsShipping, st.ShippingProgress, 10),
		st.Statistics.OrdersShipped,
	)
}

func buildBlockedReason(st game.State) string {
	b := st.CurrentBusiness()
	switch {
	case b == nil:
		return "No business selected."
	case st.IsProducing:
		return "Production is already running."
	case b.Money < game.ProductionCost:
		return fmt.Sprintf("Not enough money to build (need %s).", money(game.ProductionCost))
	default:
		return "Production did not start."
	}
}

func shipBlockedReason(st game.State) string {
	switch {
	case st.CurrentBusiness() == nil:
		return "No business selected."
	case st.IsShipping:
		return "Shipping is already running."
	case st.Inventory <= 0:
		return "No inventory to ship. Build something first."
	case !st.HasPendingOrder():
		return "No pending orders."
	default:
		return "Shipping did not start."
	}
}

func cycleLine(active bool, progress float64) string {
	if !active {
		return neutral.Sprint("idle")
	}
	return fmt.Sprintf("%s %3.0f%%", progressBar(true, progress, 20), progress)
}

func progressBar(active bool, progress float64, width int) string {
	if !active {
		return strings.Repeat(".", width)
	}
	filled := int(progress / game.ProgressComplete * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func colorizeStatus(s game.OrderStatus) string {
	label := fmt.Sprintf("%-12s", s)
	switch s {
	case game.OrderShipped:
		return success.Sprint(label)
	case game.OrderExpired:
		return danger.Sprint(label)
	case game.OrderInProgress:
		return accent.Sprint(label)
	default:
		return label
	}
}

func colorizeMoney(v int64) string {
	if v < 0 {
		return danger.Sprint(money(v))
	}
	return success.Sprint(money(v))
}

func money(v int64) string {
	if v < 0 {
		return "-$" + comma(-v)
	}
	return "$" + comma(v)
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
