package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"belutin-web/internal/coa"
	"belutin-web/internal/ledger"
	"belutin-web/internal/models"
	"belutin-web/internal/service"
	"belutin-web/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the ledger tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()
		fmt.Printf("Schema up to date (%s).\n", e.cfg.DBDriver)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var (
	userEmail    string
	userPassword string
)

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		auth := service.NewAuthService(e.users, service.NewMemoryOTPStore(), nil, e.cfg, utils.GetLogger())
		user, err := auth.Register(cmd.Context(), models.RegisterRequest{Email: userEmail, Password: userPassword})
		if err != nil {
			return err
		}
		fmt.Printf("User created: %s (id %d)\n", user.Email, user.ID)
		return nil
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Print the chart of accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, g := range coa.GroupByCategory(coa.Default().All()) {
			fmt.Printf("\n%s\n", g.Category)
			for _, a := range g.Accounts {
				fmt.Printf("  %-8s %s\n", a.Code, a.Name)
			}
		}
		return nil
	},
}

var (
	reportOwner   string
	reportOut     string
	reportJournal bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export an owner's statements (or journal) to an Excel file",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		excel := service.NewExcelService()
		out := reportOut
		if out == "" {
			out = excel.StatementsFilename()
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if reportJournal {
			listing, err := e.ledger.Journal(cmd.Context(), reportOwner)
			if err != nil {
				return err
			}
			err = excel.WriteJournal(f, reportOwner, listing)
			if err != nil {
				return err
			}
		} else {
			st, err := e.ledger.Statements(cmd.Context(), reportOwner)
			if err != nil {
				return err
			}
			if err := excel.WriteStatements(f, reportOwner, st); err != nil {
				return err
			}
			printTrialBalance(st.AdjustedTrialBalance)
			fmt.Printf("Net income: %s\n", utils.FormatRupiah(st.IncomeStatement.NetIncome))
			if !st.BalanceSheet.Balanced() {
				fmt.Println("Warning: balance sheet does not balance, check outstanding purchase accounts.")
			}
		}
		fmt.Printf("Written %s\n", out)
		return nil
	},
}

func printTrialBalance(tb ledger.TrialBalanceReport) {
	fmt.Printf("%-8s %-36s %18s %18s\n", "Kode", "Akun", "Debit", "Kredit")
	fmt.Println(strings.Repeat("-", 83))
	for _, r := range tb.Rows {
		fmt.Printf("%-8s %-36s %18s %18s\n", r.Code, r.Name, amountCell(r.Debit), amountCell(r.Credit))
	}
	fmt.Println(strings.Repeat("-", 83))
	fmt.Printf("%-45s %18s %18s\n", "Total", utils.FormatRupiah(tb.TotalDebit), utils.FormatRupiah(tb.TotalCredit))
}

func amountCell(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return utils.FormatRupiah(d)
}

var resetYes bool

var openingResetCmd = &cobra.Command{
	Use:   "reset-opening",
	Short: "Delete every opening balance (shared by all users)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			fmt.Print("This deletes the opening balances of every user. Type 'ya' to continue: ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(answer) != "ya" {
				return fmt.Errorf("aborted")
			}
		}
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.opening.ResetAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d opening balances.\n", n)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Password")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)

	reportCmd.Flags().StringVar(&reportOwner, "owner", "", "Owner email")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output .xlsx path")
	reportCmd.Flags().BoolVar(&reportJournal, "journal", false, "Export the general journal instead of the statements")
	_ = reportCmd.MarkFlagRequired("owner")

	openingResetCmd.Flags().BoolVar(&resetYes, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(migrateCmd, userCmd, accountsCmd, reportCmd, openingResetCmd)
}
