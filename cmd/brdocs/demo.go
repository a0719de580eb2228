package main

import (
	"context"
	"fmt"

	"github.com/davidleathers/brdocs/internal/domain/cnpj"
	"github.com/davidleathers/brdocs/internal/domain/cpf"
	"github.com/davidleathers/brdocs/internal/domain/phone"
	"github.com/davidleathers/brdocs/internal/service/document"
)

const (
	demoCPF   = "123.456.789-09"
	demoCNPJ  = "12.345.678/0001-95"
	demoPhone = "55 82 996484440"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// demo prints one processed example and one generated value per document kind
func (a *app) demo(ctx context.Context) error {
	if res, err := cpf.Process(demoCPF, cpf.ProcessOptions{Validate: true, Format: true, Mask: true}); err != nil {
		fmt.Fprintln(a.out, "invalid CPF")
	} else {
		fmt.Fprintln(a.out, "CPF processed:")
		fmt.Fprintf(a.out, "  original:  %s\n", res.Original)
		fmt.Fprintf(a.out, "  cleaned:   %s\n", res.Cleaned)
		fmt.Fprintf(a.out, "  valid:     %s\n", yesNo(res.Valid))
		fmt.Fprintf(a.out, "  formatted: %s\n", res.Formatted)
		fmt.Fprintf(a.out, "  masked:    %s\n", res.Masked)
	}
	if err := a.demoGenerated(ctx, document.KindCPF, "CPF"); err != nil {
		return err
	}

	if res, err := cnpj.Process(demoCNPJ, cnpj.DefaultProcessOptions()); err != nil {
		fmt.Fprintln(a.out, "invalid CNPJ")
	} else {
		fmt.Fprintln(a.out, "CNPJ processed:")
		fmt.Fprintf(a.out, "  original:  %s\n", res.Original)
		fmt.Fprintf(a.out, "  cleaned:   %s\n", res.Cleaned)
		fmt.Fprintf(a.out, "  valid:     %s\n", yesNo(res.Valid))
		fmt.Fprintf(a.out, "  formatted: %s\n", res.Formatted)
	}
	if err := a.demoGenerated(ctx, document.KindCNPJ, "CNPJ"); err != nil {
		return err
	}

	if res, err := phone.Process(demoPhone, phone.DefaultProcessOptions()); err != nil {
		fmt.Fprintln(a.out, "invalid phone number")
	} else {
		fmt.Fprintln(a.out, "Phone number processed:")
		fmt.Fprintf(a.out, "  original:  %s\n", res.Original)
		fmt.Fprintf(a.out, "  cleaned:   %s\n", res.Cleaned)
		fmt.Fprintf(a.out, "  valid:     %s\n", yesNo(res.Valid))
		fmt.Fprintf(a.out, "  formatted: %s\n", res.Formatted)
		fmt.Fprintln(a.out, "  components:")
		fmt.Fprintf(a.out, "    country code: %s\n", res.Parsed.CountryCode)
		fmt.Fprintf(a.out, "    area code:    %s\n", res.Parsed.AreaCode)
		fmt.Fprintf(a.out, "    number:       %s\n", res.Parsed.Number)
		fmt.Fprintf(a.out, "    mobile:       %s\n", yesNo(res.Parsed.IsMobile))
	}
	return a.demoGenerated(ctx, document.KindPhone, "phone number")
}

func (a *app) demoGenerated(ctx context.Context, kind document.Kind, label string) error {
	docs, err := a.svc.Generate(ctx, kind, 1, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Random %s: %s\n", label, docs[0])
	return nil
}
