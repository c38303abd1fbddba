package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/daftari/core"
)

var (
	isTerminalFunc = term.IsTerminal // mockable
	readLineFunc   = readLine        // mockable

	errHelp            = errors.New("help provided")
	errConfirmRequired = errors.New("refusing to purge without confirmation: pass -yes")
	errAborted         = errors.New("aborted")
)

type commandLine struct {
	store core.KVStore
	out   io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  keys [-prefix PREFIX]   - list the stored keys")
	fmt.Fprintln(cli.out, "  dump -key KEY           - print the JSON stored at KEY")
	fmt.Fprintln(cli.out, "  purge -key KEY [-yes]   - delete KEY")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	keysCmd := flag.NewFlagSet("keys", flag.ContinueOnError)
	keysPrefix := keysCmd.String("prefix", "", "Only list keys starting with this prefix, e.g. course_")

	dumpCmd := flag.NewFlagSet("dump", flag.ContinueOnError)
	dumpKey := dumpCmd.String("key", "", "The key to print, e.g. weeklyTimetable")

	purgeCmd := flag.NewFlagSet("purge", flag.ContinueOnError)
	purgeKey := purgeCmd.String("key", "", "The key to delete")
	purgeYes := purgeCmd.Bool("yes", false, "Do not ask for confirmation")

	for _, fs := range []*flag.FlagSet{keysCmd, dumpCmd, purgeCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "keys":
		if err := keysCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listKeys(*keysPrefix)
	case "dump":
		if err := dumpCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *dumpKey == "" {
			dumpCmd.Usage()
			return errHelp
		}
		return cli.dump(*dumpKey)
	case "purge":
		if err := purgeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *purgeKey == "" {
			purgeCmd.Usage()
			return errHelp
		}
		if !*purgeYes {
			if !isTerminalFunc(int(os.Stdin.Fd())) {
				return errConfirmRequired
			}
			fmt.Fprintf(cli.out, "Delete %q? [y/N]: ", *purgeKey)
			answer, err := readLineFunc()
			if err != nil {
				return err
			}
			if answer != "y" && answer != "yes" {
				return errAborted
			}
		}
		return cli.purge(*purgeKey)
	default:
		cli.printUsage()
		return errHelp
	}
}

func readLine() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return core.CleanString(line, true /* lower */), nil
}
