package session

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"max.ks1230/budget-app/internal/model/customerr"
)

const commandParts = 2

const (
	loginFailedTitle  = "Login Failed"
	invalidInputTitle = "Invalid Input"
	errorTitle        = "Error"

	missingCredentialsMessage = "Please enter both username and password."
	invalidPasswordMessage    = "Invalid password."
	invalidAmountMessage      = "Please enter a valid number for the amount."
	somethingWrongMessage     = "Sorry, something wrong happened..."

	dontUnderstandMessage = "I don't know that command. Type 'help' to see the list."
	okMessage             = "Gotcha!"
	deletedMessage        = "Deleted."
	clearedMessage        = "All expenses cleared."
	noExpensesMessage     = "You have no expenses yet"
	noTotalsMessage       = "No expenses to display."
	goodbyeMessage        = "Goodbye!"

	incorrectAddUsage      = "Usage: add <category> <amount>"
	incorrectDeleteUsage   = "Usage: delete <id>"
	incorrectPeriodMessage = "Report periods are: week, month, year"

	helpMessage = `Commands:
  add <category> <amount>   record an expense
  delete <id>               delete an expense by its id
  list                      show all expenses
  total [week|month|year]   show totals by category
  clear                     clear all expense history
  logout                    end the session`
)

const (
	addCommand    = "add"
	deleteCommand = "delete"
	clearCommand  = "clear"
	totalCommand  = "total"
	listCommand   = "list"
	helpCommand   = "help"
	logoutCommand = "logout"
	exitCommand   = "exit"
)

type handler func(ctx context.Context, sess *Session, arg string) (string, error)

type handlerMap map[string]handler

func newMap(s *Service) handlerMap {
	m := make(handlerMap)
	m[addCommand] = s.handleAdd
	m[deleteCommand] = s.handleDelete
	m[clearCommand] = s.handleClear
	m[totalCommand] = s.handleTotal
	m[listCommand] = s.handleList
	m[helpCommand] = s.handleHelp
	m[logoutCommand] = s.handleLogout
	m[exitCommand] = s.handleLogout

	m[""] = s.handleNoCommand

	return m
}

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts {
		return strings.ToLower(split[0]), strings.TrimSpace(split[1])
	}
	return strings.ToLower(text), ""
}

func (s *Service) handleAdd(ctx context.Context, sess *Session, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 2 {
		return incorrectAddUsage, nil
	}
	// the last field is the amount; the category may contain spaces
	category := strings.Join(args[:len(args)-1], " ")
	amount := args[len(args)-1]

	_, err := s.ledger.Add(ctx, sess.ledger, category, amount)
	if err != nil {
		var invalid *customerr.InvalidAmountError
		if errors.As(err, &invalid) {
			s.notifier.Notify(invalidInputTitle, invalidAmountMessage)
			return "", nil
		}
		s.notifier.Notify(errorTitle, somethingWrongMessage)
		return "", errors.Wrap(err, "handle add")
	}
	return okMessage, nil
}

func (s *Service) handleDelete(ctx context.Context, sess *Session, arg string) (string, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return incorrectDeleteUsage, nil
	}

	if err = s.ledger.Delete(ctx, sess.ledger, id); err != nil {
		s.notifier.Notify(errorTitle, somethingWrongMessage)
		return "", errors.Wrap(err, "handle delete")
	}
	return deletedMessage, nil
}

func (s *Service) handleClear(ctx context.Context, sess *Session, _ string) (string, error) {
	cleared, err := s.ledger.Clear(ctx, sess.ledger)
	if err != nil {
		s.notifier.Notify(errorTitle, somethingWrongMessage)
		return "", errors.Wrap(err, "handle clear")
	}
	if !cleared {
		return "", nil
	}
	return clearedMessage, nil
}

func (s *Service) handleTotal(_ context.Context, sess *Session, arg string) (string, error) {
	totals, err := s.ledger.TotalsByCategory(sess.ledger, strings.ToLower(arg))
	if err != nil {
		return incorrectPeriodMessage, errors.Wrap(err, "handle total")
	}
	if len(totals) == 0 {
		return noTotalsMessage, nil
	}

	records := make([]struct {
		category string
		amount   float64
	}, 0, len(totals))
	total := 0.0
	for category, amount := range totals {
		records = append(records, struct {
			category string
			amount   float64
		}{category, amount})
		total += amount
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].amount > records[j].amount
	})

	res := make([]string, 0, len(records)+2)
	for _, rec := range records {
		res = append(res, fmt.Sprintf("%s: %s%.2f", rec.category, s.currency, rec.amount))
	}
	res = append(res, "", fmt.Sprintf("Total: %s%.2f", s.currency, total))
	return strings.Join(res, "\n"), nil
}

func (s *Service) handleList(_ context.Context, sess *Session, _ string) (string, error) {
	records := sess.ledger.Records()
	if len(records) == 0 {
		return noExpensesMessage, nil
	}

	res := make([]string, 0, len(records))
	for _, r := range records {
		res = append(res, fmt.Sprintf("%d. %s: %s%.2f on %s",
			r.ID, r.Category, s.currency, r.Amount, r.Date))
	}
	return strings.Join(res, "\n"), nil
}

func (s *Service) handleHelp(_ context.Context, _ *Session, _ string) (string, error) {
	return helpMessage, nil
}

func (s *Service) handleLogout(_ context.Context, sess *Session, _ string) (string, error) {
	sess.active = false
	return goodbyeMessage, nil
}

func (s *Service) handleNoCommand(_ context.Context, _ *Session, _ string) (string, error) {
	return "", nil
}
