//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/UnifyEM/storefront/common"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
	"github.com/UnifyEM/storefront/common/service"
	"github.com/UnifyEM/storefront/common/ulogger"
	"github.com/UnifyEM/storefront/server/api"
	"github.com/UnifyEM/storefront/server/data"
	"github.com/UnifyEM/storefront/server/global"
)

// Swaggo data
// @title Storefront API sandbox
// @version 0.4
// @description Local implementation of the storefront API used by sfcli
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// envDataDir overrides the data directory
const envDataDir = "SFSANDBOX_DIR"

var conf *global.ServerConfig
var logger interfaces.Logger
var dataInstance *data.Data
var apiInstance *api.API

func main() {
	args := os.Args[1:]
	if len(args) == 1 && strings.ToLower(args[0]) == "version" {
		common.Banner(os.Stdout, global.Description, global.Version, global.Build)
		return
	}

	// launch() provides OS-specific functionality and then calls startService() or console() below
	os.Exit(launch(args))
}

// OS-agnostic console mode
func console(args []string) int {
	var err error

	if len(args) < 1 {
		usage()
		return 1
	}

	conf, err = global.Config(os.Getenv(envDataDir))
	if err != nil {
		fmt.Printf("Fatal config error: %v\n", err)
		return 1
	}

	switch strings.ToLower(args[0]) {

	case "user":
		if len(args) != 3 && len(args) != 4 {
			fmt.Println("Usage: user <username> <password> [email]")
			return 1
		}
		email := ""
		if len(args) == 4 {
			email = args[3]
		}
		return withData(func(d *data.Data) error {
			user, err := d.SetUser(args[1], args[2], email)
			if err != nil {
				return fmt.Errorf("error setting user: %w", err)
			}
			fmt.Printf("Password set for user \"%s\" (id %d)\n", user.Username, user.ID)
			return nil
		})

	case "disable":
		if len(args) != 2 {
			fmt.Println("Usage: disable <username>")
			return 1
		}
		return withData(func(d *data.Data) error {
			if err := d.DisableUser(args[1]); err != nil {
				return fmt.Errorf("error disabling user: %w", err)
			}
			fmt.Printf("User \"%s\" disabled and tokens revoked\n", args[1])
			return nil
		})

	case "revoke":
		if len(args) != 2 {
			fmt.Println("Usage: revoke <username>")
			return 1
		}
		return withData(func(d *data.Data) error {
			n, err := d.RevokeTokens(args[1])
			if err != nil {
				return fmt.Errorf("error revoking tokens: %w", err)
			}
			fmt.Printf("Revoked %d refresh token(s) for \"%s\"\n", n, args[1])
			return nil
		})

	case "seed":
		return withData(func(d *data.Data) error {
			products, discounts, err := d.Seed()
			if err != nil {
				return fmt.Errorf("error seeding catalog: %w", err)
			}
			fmt.Printf("Added %d product(s) and %d discount code(s)\n", products, discounts)
			return nil
		})

	case "foreground":
		return startService()

	case "listen":
		if len(args) != 2 {
			fmt.Println("Usage: listen <address>")
			fmt.Printf("Example: %s listen 127.0.0.1:8000\n", global.Name)
			return 1
		}

		if _, err = net.ResolveTCPAddr("tcp", args[1]); err != nil {
			fmt.Printf("Invalid listen address: %v\n", err)
			return 1
		}

		global.ListenOverride = args[1]
		return startService()

	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Printf("Usage: %s <foreground | listen <address> | user <username> <password> [email] | disable <username> | revoke <username> | seed | version>\n", global.Name)
	fmt.Printf("The data directory defaults to ~/%s and may be set with %s\n", global.DataDir, envDataDir)
}

// withData opens the database for a single console operation
func withData(f func(d *data.Data) error) int {
	d, err := data.New(conf, null.Logger())
	if err != nil {
		fmt.Printf("Data error: %s\n", err.Error())
		return 1
	}
	defer d.Close()

	if err = f(d); err != nil {
		fmt.Println(err.Error())
		return 1
	}
	return 0
}

func startService() int {
	var err error

	common.Logo(os.Stdout, global.Name)

	// Create a logger using the loaded configuration
	logger, err = ulogger.New(
		ulogger.WithPrefix(global.LogName),
		ulogger.WithLogFile(conf.SC.Get(global.ConfigLogFile).String()),
		ulogger.WithLogStdout(conf.SC.Get(global.ConfigLogStdout).Bool()),
		ulogger.WithRetention(conf.SC.Get(global.ConfigLogRetention).Int()),
		ulogger.WithDebug(global.Debug))

	if err != nil {
		fmt.Printf("error creating logger: %v\n", err)
		return 1
	}

	dataInstance, err = data.New(conf, logger)
	if err != nil {
		logger.Fatalf(1002, "unable to open database: %s", err.Error())
		return 1
	}

	apiInstance, err = api.New(conf, logger, dataInstance)
	if err != nil {
		logger.Fatalf(1003, "unable to create API: %s", err.Error())
		dataInstance.Close()
		return 1
	}

	s, err := service.New(
		service.WithServiceName(global.Name),
		service.WithServiceVersion(global.Version),
		service.WithServiceBuild(global.Build),
		service.WithLogger(logger),
		service.WithTaskTicker(global.TaskTicker*time.Second),
		service.WithBackgroundFunc(serviceBackground),
		service.WithTasksFunc(serviceTasks),
		service.WithStopFunc(serviceStopping),
		service.WithSEid(1500))

	if err != nil {
		logger.Fatalf(1005, "unable to create service: %s", err.Error())
		dataInstance.Close()
		return 1
	}

	if err = s.Run(context.Background()); err != nil {
		logger.Fatalf(1006, "service failed: %s", err.Error())
		return 1
	}
	return 0
}

// serviceBackground is launched as a goroutine when the service starts
func serviceBackground(logger interfaces.Logger) {
	logger.Infof(1010, "Starting API on %s", conf.SC.Get(global.ConfigListen).String())
	if err := apiInstance.Start(); err != nil {
		logger.Errorf(1011, "API error: %s", err.Error())
	}
}

// serviceTasks is called every TaskTicker seconds
func serviceTasks(logger interfaces.Logger) {
	n, err := dataInstance.PruneTokens()
	if err != nil {
		logger.Errorf(1020, "error pruning tokens: %s", err.Error())
		return
	}
	if n > 0 {
		logger.Infof(1021, "pruned %d expired refresh token(s)", n)
	}
}

// serviceStopping is called when the service is about to exit
func serviceStopping(logger interfaces.Logger) {
	if err := apiInstance.Stop(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf(1030, "error stopping API: %s", err.Error())
	}

	dataInstance.Close()

	if err := conf.Checkpoint(); err != nil {
		logger.Errorf(1007, "error saving configuration: %s", err.Error())
	}
}
