// setrole asigna el rol de un usuario existente. Es la única vía para crear
// administradores y proveedores: la API nunca permite cambiar el propio rol.
//
// Uso:
//
//	go run ./cmd/setrole -email ana@example.com -role supplier
//	go run ./cmd/setrole -id 3f0c...e1 -role admin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
	"github.com/jhoicas/marketplace-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/marketplace-backoffice/pkg/config"
	"github.com/jhoicas/marketplace-backoffice/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run devuelve el código de salida: 0 ok, 1 usuario no encontrado o fallo, 2 uso o rol inválido.
// Los defers (pool, contexto) se ejecutan antes de os.Exit.
func run() int {
	email := flag.String("email", "", "email del usuario")
	id := flag.String("id", "", "id del usuario (alternativa a -email)")
	role := flag.String("role", "", "admin | supplier | customer")
	flag.Parse()

	if (*email == "") == (*id == "") || *role == "" {
		fmt.Fprintln(os.Stderr, "uso: setrole (-email EMAIL | -id ID) -role ROL")
		flag.PrintDefaults()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return 1
	}
	defer pool.Close()

	var target string
	err = postgres.NewTxRunner(pool).RunUsers(ctx, func(users repository.UserRepository) error {
		target = *id
		if target == "" {
			u, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*email)))
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrUserNotFound
			}
			target = u.ID
		}
		return usecase.NewUserUseCase(users).AssignRole(ctx, target, *role)
	})
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		log.Error().Str("email", *email).Str("id", *id).Msg("usuario no encontrado")
		return 1
	case errors.Is(err, domain.ErrInvalidInput):
		log.Error().Err(err).Msg("rol inválido")
		return 2
	case err != nil:
		log.Error().Err(err).Msg("asignar rol")
		return 1
	}

	log.Info().Str("user_id", target).Str("role", *role).Msg("rol asignado")
	return 0
}
