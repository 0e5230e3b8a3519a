package commands

import (
	"bufio"
	"context"
	"strings"

	"phonefixtures/internal/domain/phone"
)

type digitsLine struct {
	Value  string `json:"value"`
	Digits []int  `json:"digits"`
}

// RunDigits prints the distinct digits of each value as a JSON line. With
// no values it reads one value per line from stdio.Reader.
func RunDigits(stdio IOTuple, values []string) error {
	if len(values) > 0 {
		for _, v := range values {
			if err := writeJSONLine(stdio.Writer, digitsLine{Value: v, Digits: phone.DistinctDigits(v)}); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(stdio.Reader)
	for scanner.Scan() {
		v := strings.TrimSpace(scanner.Text())
		if v == "" {
			continue
		}
		if err := writeJSONLine(stdio.Writer, digitsLine{Value: v, Digits: phone.DistinctDigits(v)}); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// RunFingerprint prints the fingerprint of each stored record as a JSON line.
func RunFingerprint(ctx context.Context, reader phone.Reader, stdio IOTuple, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	svc := phone.NewFingerprintService(reader)
	for _, recID := range ids {
		fp, err := svc.Fingerprint(ctx, recID)
		if err != nil {
			return err
		}
		if err := writeJSONLine(stdio.Writer, fp); err != nil {
			return err
		}
	}
	return nil
}
