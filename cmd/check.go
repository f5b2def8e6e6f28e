package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/girkit/girdoc/internal/diag"
	"github.com/girkit/girdoc/internal/gir"
)

var checkCmd = &cobra.Command{
	Use:   "check [GIR-FILE]",
	Short: "Check documentation coverage",
	Long: `Check reports every introspectable declaration that carries no
documentation. With --fatal-warnings the command exits nonzero when any
symbol is undocumented.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	repo, _, reporter, err := loadProject(args)
	if err != nil {
		log.Fatalf("failed to load project: %v", err)
	}

	total, missing := checkNamespace(repo.Namespace(), reporter)

	documented := total - missing
	percent := 100.0
	if total > 0 {
		percent = float64(documented) / float64(total) * 100
	}
	fmt.Printf("%d/%d symbols documented (%.1f%%)\n", documented, total, percent)

	exitPerReporter(reporter)
}

// checkNamespace walks every introspectable declaration and reports the
// undocumented ones. Returns total and undocumented counts.
func checkNamespace(ns *gir.Namespace, reporter *diag.Reporter) (total, missing int) {
	check := func(name string, info *gir.Info) {
		if !info.Introspectable() {
			return
		}
		total++
		if info.Doc == nil {
			missing++
			reporter.Warnf("undocumented symbol", "symbol", ns.Name+"."+name)
		}
	}
	checkCallables := func(owner string, ctors, fns []*gir.Function, methods []*gir.Method) {
		for _, fn := range ctors {
			check(owner+"."+fn.Name, &fn.Info)
		}
		for _, m := range methods {
			check(owner+"."+m.Name, &m.Info)
		}
		for _, fn := range fns {
			check(owner+"."+fn.Name, &fn.Info)
		}
	}

	for _, cls := range ns.GetClasses() {
		check(cls.Name, &cls.Info)
		checkCallables(cls.Name, cls.Constructors, cls.Functions, cls.Methods)
		for _, p := range cls.Properties {
			check(cls.Name+":"+p.Name, &p.Info)
		}
		for _, sig := range cls.Signals {
			check(cls.Name+"::"+sig.Name, &sig.Info)
		}
	}
	for _, iface := range ns.GetInterfaces() {
		check(iface.Name, &iface.Info)
		checkCallables(iface.Name, nil, iface.Functions, iface.Methods)
		for _, p := range iface.Properties {
			check(iface.Name+":"+p.Name, &p.Info)
		}
		for _, sig := range iface.Signals {
			check(iface.Name+"::"+sig.Name, &sig.Info)
		}
	}
	for _, rec := range ns.GetEffectiveRecords() {
		check(rec.Name, &rec.Info)
		checkCallables(rec.Name, rec.Constructors, rec.Functions, rec.Methods)
	}
	for _, u := range ns.GetUnions() {
		check(u.Name, &u.Info)
		checkCallables(u.Name, u.Constructors, u.Functions, u.Methods)
	}
	for _, e := range ns.GetEnumerations() {
		check(e.Name, &e.Info)
	}
	for _, b := range ns.GetBitFields() {
		check(b.Name, &b.Info)
	}
	for _, e := range ns.GetErrorDomains() {
		check(e.Name, &e.Info)
	}
	for _, a := range ns.GetAliases() {
		check(a.Name, &a.Info)
	}
	for _, cb := range ns.GetCallbacks() {
		check(cb.Name, &cb.Info)
	}
	for _, fn := range ns.GetFunctions() {
		check(fn.Name, &fn.Info)
	}
	for _, m := range ns.GetEffectiveFunctionMacros() {
		check(m.Name, &m.Info)
	}
	for _, c := range ns.GetConstants() {
		check(c.Name, &c.Info)
	}
	return total, missing
}
