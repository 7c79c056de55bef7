package cli

import (
	"fmt"
	"strconv"

	"eventers-marketplace-client/dashboard"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/notify"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *App) walletCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet balance, history and payouts",
	}
	cmd.AddCommand(
		a.walletBalanceCommand(),
		a.walletTransactionsCommand(),
		a.walletWithdrawCommand(),
		a.walletPinCommand(),
		a.walletPinStatusCommand(),
	)
	return cmd
}

func (a *App) walletBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			b, err := a.factory.Client(ctx).WalletBalance(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(b)
			}
			fmt.Fprintf(a.out, "available %s %s\npending   %s %s\n",
				b.Balance.StringFixed(2), b.Currency, b.PendingBalance.StringFixed(2), b.Currency)
			return nil
		},
	}
}

func (a *App) walletTransactionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transactions",
		Short: "List wallet transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			me, err := a.require(ctx)
			if err != nil {
				return err
			}
			txs, err := a.factory.Client(ctx).WalletTransactions(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(txs)
			}
			t := a.table("DATE", "REFERENCE", "TYPE", "AMOUNT", "STATUS", "EVENT")
			for _, tx := range txs {
				event := "-"
				if tx.Event != nil {
					event = tx.Event.Name
				}
				t.row(tx.CreatedAt.Local().Format(dateLayout), tx.Reference, string(tx.Type),
					dashboard.Signed(tx, me.ID).StringFixed(2), string(tx.Status), event)
			}
			return t.flush()
		},
	}
}

func (a *App) walletWithdrawCommand() *cobra.Command {
	var req model.WithdrawRequest
	var amount string
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw to a bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			var err error
			if req.Amount, err = decimal.NewFromString(amount); err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			tx, err := a.factory.Client(ctx).Withdraw(ctx, req)
			if err != nil {
				return err
			}
			notify.Success(a.notifier, "Withdrawal %s of %s is %s", tx.Reference, tx.Amount.StringFixed(2), tx.Status)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&amount, "amount", "", "amount to withdraw")
	flags.StringVar(&req.BankCode, "bank", "", "bank code (see `marketplace banks`)")
	flags.StringVar(&req.AccountNumber, "account", "", "10 digit account number")
	flags.StringVar(&req.AccountName, "account-name", "", "account holder name")
	flags.StringVar(&req.Pin, "pin", "", "4 digit transaction pin")
	return cmd
}

func (a *App) walletPinCommand() *cobra.Command {
	var req model.SetPinRequest
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Set or change the transaction pin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			if err := a.factory.Client(ctx).SetPin(ctx, req); err != nil {
				return err
			}
			notify.Success(a.notifier, "Transaction pin saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Pin, "pin", "", "new 4 digit pin")
	cmd.Flags().StringVar(&req.OldPin, "old-pin", "", "current pin, when changing it")
	return cmd
}

func (a *App) walletPinStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pin-status",
		Short: "Show whether a transaction pin is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			s, err := a.factory.Client(ctx).PinStatus(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "pin set: %s\n", strconv.FormatBool(s.HasPin))
			return nil
		},
	}
}

func (a *App) banksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List supported banks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			banks, err := a.factory.Client(ctx).Banks(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(banks)
			}
			t := a.table("CODE", "NAME")
			for _, b := range banks {
				t.row(b.Code, b.Name)
			}
			return t.flush()
		},
	}
}
