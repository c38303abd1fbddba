package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

func (cli *commandLine) listKeys(prefix string) error {
	keys, err := cli.store.Keys(prefix)
	if err != nil {
		return errors.Wrap(err, "listing keys")
	}
	for _, k := range keys {
		fmt.Fprintln(cli.out, k)
	}
	return nil
}

func (cli *commandLine) dump(key string) error {
	data, err := cli.store.Get(key)
	if err != nil {
		return errors.Wrapf(err, "reading %q", key)
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, data, "", "  "); err != nil {
		return errors.Wrapf(err, "%q holds malformed JSON", key)
	}
	fmt.Fprintln(cli.out, buf.String())
	return nil
}

func (cli *commandLine) purge(key string) error {
	if _, err := cli.store.Get(key); err != nil {
		return errors.Wrapf(err, "reading %q", key)
	}
	if err := cli.store.Delete(key); err != nil {
		return errors.Wrapf(err, "deleting %q", key)
	}
	fmt.Fprintf(cli.out, "deleted %q\n", key)
	return nil
}
