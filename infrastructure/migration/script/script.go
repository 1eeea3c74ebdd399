package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/infrastructure/database/postgres"
	"github.com/vfg2006/rsa-auditor-api/infrastructure/repository"
	"github.com/vfg2006/rsa-auditor-api/internal/config"
	"github.com/vfg2006/rsa-auditor-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}
	log.Configure(cfg.App.LogLevel, cfg.App.LogFormat)
	logrus.Info("Iniciando script de migração...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logrus.Info("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, repository.CooldownSchema)
		return err
	})
	if err != nil {
		logrus.Fatalf("ERRO ao criar tabela cooldown_ledger: %v", err)
	}

	logrus.Infof("Migração concluída em %v!", time.Since(startTime))
}
