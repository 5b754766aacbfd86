package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cx-tal-miterani/flight-reservation/internal/auth"
	"github.com/cx-tal-miterani/flight-reservation/internal/database"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine"
	"github.com/cx-tal-miterani/flight-reservation/internal/render"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run an interactive reservation session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, pool, log, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		eng := engine.New(
			database.NewRepository(pool),
			database.NewTxManager(pool, log),
			auth.NewService(),
			log,
		)

		runREPL(cmd, eng)
		return nil
	},
}

func runREPL(cmd *cobra.Command, eng *engine.Engine) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	sess := engine.NewSession()

	fmt.Fprint(out, "> ")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return
		}
		if line != "" {
			fmt.Fprint(out, execute(ctx, eng, sess, strings.Fields(line)))
		}
		fmt.Fprint(out, "> ")
	}
}

func execute(ctx context.Context, eng *engine.Engine, sess *engine.Session, fields []string) string {
	switch fields[0] {
	case "create":
		if len(fields) != 4 {
			return usageLine("create <username> <password> <initial balance>")
		}
		balance, err := strconv.Atoi(fields[3])
		if err != nil {
			return usageLine("create <username> <password> <initial balance>")
		}
		return render.CreateCustomer(fields[1], eng.CreateCustomer(ctx, fields[1], fields[2], balance))

	case "login":
		if len(fields) != 3 {
			return usageLine("login <username> <password>")
		}
		return render.Login(fields[1], eng.Login(ctx, sess, fields[1], fields[2]))

	case "search":
		if len(fields) != 6 {
			return usageLine("search <origin> <dest> <direct 0|1> <day> <max>")
		}
		direct := fields[3] == "1"
		day, dayErr := strconv.Atoi(fields[4])
		max, maxErr := strconv.Atoi(fields[5])
		if dayErr != nil || maxErr != nil {
			return usageLine("search <origin> <dest> <direct 0|1> <day> <max>")
		}
		results, err := eng.Search(ctx, sess, fields[1], fields[2], direct, day, max)
		return render.Search(results, err)

	case "book":
		if len(fields) != 2 {
			return usageLine("book <itinerary index>")
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return usageLine("book <itinerary index>")
		}
		resID, bookErr := eng.Book(ctx, sess, index)
		return render.Book(resID, bookErr)

	case "pay":
		if len(fields) != 2 {
			return usageLine("pay <reservation id>")
		}
		resID, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return usageLine("pay <reservation id>")
		}
		receipt, payErr := eng.Pay(ctx, sess, resID)
		return render.Pay(receipt, payErr)

	case "reservations":
		details, err := eng.Reservations(ctx, sess)
		return render.Reservations(details, err)

	case "cancel":
		if len(fields) != 2 {
			return usageLine("cancel <reservation id>")
		}
		resID, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return usageLine("cancel <reservation id>")
		}
		return render.Cancel(resID, eng.Cancel(ctx, sess, resID))

	default:
		return "Unknown command\n"
	}
}

func usageLine(usage string) string {
	return "Usage: " + usage + "\n"
}
