package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/mcavalcanti/billquest/internal/app"
	"github.com/mcavalcanti/billquest/internal/domain"
)

const usage = `usage: billquest [flags] <command>

commands:
  register  -email -senha [-nome]     create a user
  login     -email -senha             sign in and load your data
  logout                              sign out
  list                                show your accounts with status
  add       -nome -valor -vencimento [-tipo] [-forma] [-parcelas] [-local] [-lat] [-lng]
  pay       <id>                      mark an account as paid
  delete    <id>                      remove an account
  profile                             show level, XP and achievements
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New()
	if err != nil {
		log.Error().Err(err).Msg("Can't start application")
		os.Exit(1)
	}

	if err := run(ctx, application); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var errNotLoggedIn = errors.New("not logged in, run: billquest login -email ... -senha ...")

func run(ctx context.Context, a *app.Application) error {
	args := flag.Args()
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	switch args[0] {
	case "register":
		return register(ctx, a, args[1:])
	case "login":
		return login(ctx, a, args[1:])
	case "logout":
		return a.Logout(ctx)
	case "list":
		return list(ctx, a)
	case "add":
		return add(ctx, a, args[1:])
	case "pay":
		return pay(ctx, a, args[1:])
	case "delete":
		return remove(ctx, a, args[1:])
	case "profile":
		return profile(ctx, a)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func resume(ctx context.Context, a *app.Application) error {
	email, err := a.Resume(ctx)
	if err != nil {
		return err
	}
	if email == "" {
		return errNotLoggedIn
	}
	return nil
}

func register(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email")
	senha := fs.String("senha", "", "password")
	nome := fs.String("nome", "", "display name")
	fs.Parse(args)

	user, err := a.Services().Auth.Register(ctx, domain.User{
		Email:    *email,
		Password: *senha,
		Nome:     *nome,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s\n", user.Email)
	return nil
}

func login(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	senha := fs.String("senha", "", "password")
	fs.Parse(args)

	if err := a.Login(ctx, *email, *senha); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", *email)
	return printProfile(a)
}

func list(ctx context.Context, a *app.Application) error {
	if err := resume(ctx, a); err != nil {
		return err
	}

	accounts := a.Services().Gamified.Accounts()
	if len(accounts) == 0 {
		fmt.Println("no accounts")
		return nil
	}
	for _, acc := range accounts {
		fmt.Printf("%-4s %-24s R$%8.2f  vence %-10s  [%s]\n",
			acc.ID, acc.Nome, acc.ValorTotal, acc.Vencimento, acc.StatusInfo.Label)
	}
	return nil
}

func add(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	nome := fs.String("nome", "", "account name")
	valor := fs.Float64("valor", 0, "total amount")
	vencimento := fs.String("vencimento", "", "due date (YYYY-MM-DD)")
	tipo := fs.String("tipo", string(domain.ExpenseVariable), "expense kind: fixed|variable|occasional")
	forma := fs.String("forma", string(domain.PaymentSingle), "payment method: single|installment")
	parcelas := fs.Int("parcelas", 1, "installment count")
	local := fs.String("local", "", "location description")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	fs.Parse(args)

	if err := resume(ctx, a); err != nil {
		return err
	}

	acc := domain.Account{
		Nome:           *nome,
		ValorTotal:     *valor,
		Vencimento:     domain.Date(*vencimento),
		TipoGasto:      domain.ExpenseKind(*tipo),
		FormaPagamento: domain.PaymentMethod(*forma),
		QtdParcela:     *parcelas,
		Localidade:     *local,
	}
	if *lat != 0 || *lng != 0 {
		acc.Coordenadas = &domain.Coordinates{Latitude: *lat, Longitude: *lng}
	}

	created, err := a.Services().Gamified.AddAccount(ctx, acc)
	if err != nil {
		return err
	}
	fmt.Printf("added account %s (%s)\n", created.ID, created.Nome)
	return a.Close(ctx)
}

func pay(ctx context.Context, a *app.Application, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: billquest pay <id>")
	}
	if err := resume(ctx, a); err != nil {
		return err
	}

	result, err := a.Services().Gamified.MarkAccountAsPaid(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("paid %s on %s (%d days before due)\n",
		result.Account.Nome, result.Account.DataPagamento, result.DaysEarly)
	return a.Close(ctx)
}

func remove(ctx context.Context, a *app.Application, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: billquest delete <id>")
	}
	if err := resume(ctx, a); err != nil {
		return err
	}

	if err := a.Services().Gamified.DeleteAccount(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted account %s\n", args[0])
	return a.Close(ctx)
}

func profile(ctx context.Context, a *app.Application) error {
	if err := resume(ctx, a); err != nil {
		return err
	}
	return printProfile(a)
}

func printProfile(a *app.Application) error {
	p := a.Services().Game.Profile()
	fmt.Printf("level %d - %d/%d XP\n", p.Level, p.XP, p.XPToNextLevel)
	if len(p.Achievements) == 0 {
		fmt.Println("no achievements yet")
		return nil
	}
	for _, id := range p.Achievements {
		if ach, ok := domain.AchievementCatalog[id]; ok {
			fmt.Printf("  %s - %s\n", ach.Name, ach.Description)
		} else {
			fmt.Printf("  %s\n", id)
		}
	}
	return nil
}
