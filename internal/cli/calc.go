package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/pkg/apperror"
)

// cart is the calculator payload
type cart struct {
	TaxMode       *enum.TaxMode        `json:"tax_mode"`
	Lines         []billing.RawLine    `json:"lines"`
	ExtraCharge   billing.NumericInput `json:"extra_charge"`
	PaymentStatus enum.PaymentStatus   `json:"payment_status"`
	PaidAmount    *decimal.Decimal     `json:"paid_amount"`
}

func newCalcCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [file]",
		Short: "Calculate totals for a JSON cart",
		Example: `  # Price a cart from a file
  billctl calc cart.json

  # Read from stdin and force inclusive pricing
  cat cart.json | billctl calc --mode inclusive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			mode, _ := cmd.Flags().GetString("mode")
			return runCalc(in, cmd.OutOrStdout(), cfg.Billing.DefaultTaxMode, mode)
		},
	}

	cmd.Flags().String("mode", "", "Tax mode override: exclusive or inclusive")
	return cmd
}

func runCalc(in io.Reader, out io.Writer, defaultMode enum.TaxMode, modeFlag string) error {
	var c cart
	if err := json.NewDecoder(in).Decode(&c); err != nil {
		return fmt.Errorf("invalid cart: %w", err)
	}

	if modeFlag != "" {
		mode, err := enum.ParseTaxMode(modeFlag)
		if err != nil {
			return err
		}
		c.TaxMode = &mode
	}

	summary, err := service.NewBillingService(defaultMode).Calculate(&service.CalculateInput{
		TaxMode:       c.TaxMode,
		Lines:         c.Lines,
		ExtraCharge:   c.ExtraCharge,
		PaymentStatus: c.PaymentStatus,
		PaidAmount:    c.PaidAmount,
	})
	if err != nil {
		return describe(err)
	}

	return writeJSON(out, summary)
}

func newSettleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle <total>",
		Short: "Split a grand total into paid and due",
		Example: `  billctl settle 284.90 --status partial --paid 100`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid total %q", args[0])
			}

			statusFlag, _ := cmd.Flags().GetString("status")
			status, err := enum.ParsePaymentStatus(statusFlag)
			if err != nil {
				return err
			}

			input := &service.SettleInput{Total: total, PaymentStatus: status}
			if cmd.Flags().Changed("paid") {
				paidFlag, _ := cmd.Flags().GetString("paid")
				paid, err := decimal.NewFromString(paidFlag)
				if err != nil {
					return fmt.Errorf("invalid paid amount %q", paidFlag)
				}
				input.PaidAmount = &paid
			}

			settlement, err := service.NewBillingService(enum.TaxModeExclusive).Settle(input)
			if err != nil {
				return describe(err)
			}
			return writeJSON(cmd.OutOrStdout(), settlement)
		},
	}

	cmd.Flags().String("status", "unpaid", "Payment status: unpaid, paid or partial")
	cmd.Flags().String("paid", "", "Amount paid, required for partial")
	return cmd
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe flattens validation errors into one line
func describe(err error) error {
	appErr := apperror.GetAppError(err)
	if len(appErr.Errors) == 0 {
		return err
	}
	msg := appErr.Message
	for _, fe := range appErr.Errors {
		msg += fmt.Sprintf("; %s %s", fe.Field, fe.Message)
	}
	return errors.New(msg)
}
