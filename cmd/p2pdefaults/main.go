// Package main 提供 p2pdefaults 命令行入口
//
// 打印当前（或指定）环境的默认网络栈配置并校验其一致性。
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"

	defaults "github.com/dep2p/go-dep2p-defaults"
	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/util/logger"
	"github.com/dep2p/go-dep2p-defaults/node"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

var log = logger.Logger("cmd")

// cliFlags 命令行参数
type cliFlags struct {
	env          string
	identityFile string
	keychainFile string
	dnsServer    string
	check        bool
	compact      bool
	showVersion  bool
	showHelp     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, out io.Writer) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("p2pdefaults", flag.ContinueOnError)
	fs.SetOutput(out)

	// ─────────────────────────────────────────────────────────────────────
	// 配置参数
	// ─────────────────────────────────────────────────────────────────────
	fs.StringVar(&f.env, "env", "auto", "运行环境 (auto/host/sandboxed)")
	fs.StringVar(&f.identityFile, "identity", "", "身份密钥文件路径")
	fs.StringVar(&f.keychainFile, "keychain", "", "密钥链参数 JSON 文件路径")
	fs.StringVar(&f.dnsServer, "dns-server", "", "DNS 服务器地址（ip 或 ip:port）")

	// ─────────────────────────────────────────────────────────────────────
	// 输出与校验
	// ─────────────────────────────────────────────────────────────────────
	fs.BoolVar(&f.check, "check", false, "额外校验节点 fx 依赖图")
	fs.BoolVar(&f.compact, "compact", false, "输出单行 JSON")

	// ─────────────────────────────────────────────────────────────────────
	// 信息显示
	// ─────────────────────────────────────────────────────────────────────
	fs.BoolVar(&f.showVersion, "version", false, "显示版本信息")
	fs.BoolVar(&f.showHelp, "help", false, "显示帮助信息")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}

func run(args []string, out io.Writer) error {
	f, fs, err := parseFlags(args, out)
	if err != nil {
		return err
	}

	if f.showVersion {
		printVersion(out)
		return nil
	}
	if f.showHelp {
		printHelp(out, fs)
		return nil
	}

	env := defaults.Detect()
	if f.env != "auto" {
		env = types.ParseEnvironment(f.env)
	}

	cfg, err := defaults.DefaultsFor(env, buildOptions(f)...)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}
	log.Debug("配置已生成", "env", env, "services", cfg.Services.Keys())

	if err := printConfig(out, cfg, f.compact); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}
	if f.check {
		if err := fx.ValidateApp(node.Module(cfg), node.WithNopLogger()); err != nil {
			return fmt.Errorf("依赖图校验失败: %w", err)
		}
	}
	return nil
}

// buildOptions 将命令行参数转换为选项
func buildOptions(f *cliFlags) []defaults.Option {
	var opts []defaults.Option
	if f.identityFile != "" {
		opts = append(opts, defaults.WithIdentityFromFile(f.identityFile))
	}
	if f.keychainFile != "" {
		opts = append(opts, defaults.WithKeychainFile(f.keychainFile))
	}
	if f.dnsServer != "" {
		opts = append(opts, defaults.WithDNSServer(f.dnsServer))
	}
	return opts
}

func printConfig(out io.Writer, cfg *config.Configuration, compact bool) error {
	enc := json.NewEncoder(out)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(cfg)
}

// printVersion 打印版本信息
func printVersion(out io.Writer) {
	fmt.Fprintln(out, defaults.VersionInfo())
	fmt.Fprintf(out, "  env: %s\n", defaults.Detect())
}

// printHelp 打印帮助信息
func printHelp(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "p2pdefaults - 打印并校验 P2P 节点默认网络栈配置")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "用法:")
	fmt.Fprintln(out, "  p2pdefaults [选项]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "选项:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "环境变量:")
	fmt.Fprintf(out, "  %-26s 日志级别（subsystem=level,...,default）\n", logger.EnvLevel)
	fmt.Fprintf(out, "  %-26s 日志格式（text/json）\n", logger.EnvFormat)
	fmt.Fprintf(out, "  %-26s 日志包含源码位置\n", logger.EnvAddSource)
}
