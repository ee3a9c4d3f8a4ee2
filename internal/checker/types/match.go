package types

import (
	"strings"

	"github.com/emplang/empc/internal/ast"
)

// checkMatchExhaustive implements spec.md §4.2 "Match exhaustiveness"
// and introduces payload bindings into each arm body's environment
// before the caller walks it.
func (c *Context) checkMatchExhaustive(m *ast.Match, scrutType ast.Type, env *Env, walkBlock func(*Env, *ast.Block)) {
	enumName, isEnum := enumScrutineeName(scrutType)
	if isEnum {
		_, isEnum = c.Enums[enumName]
	}

	seenDefault := false
	seenVariant := map[string]bool{}
	for _, arm := range m.Arms {
		if arm.IsDefault {
			if seenDefault {
				c.errorf("TYP010", arm.Sp, "duplicate default match arm")
			}
			seenDefault = true
			mark := env.Snapshot()
			walkBlock(env, arm.Body)
			env.Restore(mark)
			continue
		}
		if !isEnum {
			c.errorf("TYP009", arm.Sp, "match on non-enum scrutinee requires a default '_' arm")
			continue
		}
		if arm.EnumName != "" && arm.EnumName != enumName {
			c.errorf("TYP009", arm.Sp, "arm pattern '%s::%s' does not match scrutinee enum '%s'", arm.EnumName, arm.Variant, enumName)
		}
		if seenVariant[arm.Variant] {
			c.errorf("TYP010", arm.Sp, "duplicate match arm for variant '%s'", arm.Variant)
		}
		seenVariant[arm.Variant] = true

		mark := env.Snapshot()
		bindPayload(c, env, enumName, arm)
		walkBlock(env, arm.Body)
		env.Restore(mark)
	}

	if isEnum && !seenDefault {
		enum := c.Enums[enumName]
		var missing []string
		for _, v := range enum.Variants {
			if !seenVariant[v.Name] {
				missing = append(missing, v.Name)
			}
		}
		if len(missing) > 0 {
			c.errorf("TYP009", m.Span(), "non-exhaustive match on '%s': missing variant(s) %s", enumName, strings.Join(missing, ", "))
		}
	}
}

func enumScrutineeName(t ast.Type) (string, bool) {
	n, ok := t.(*ast.NameType)
	if !ok {
		return "", false
	}
	return n.Name, true
}

// bindPayload introduces arm's payload bindings ("_" discarded) typed
// per the matching enum variant's declared payload types.
func bindPayload(c *Context, env *Env, enumName string, arm ast.MatchArm) {
	enum, ok := c.Enums[enumName]
	if !ok {
		return
	}
	var variant *ast.EnumVariant
	for i := range enum.Variants {
		if enum.Variants[i].Name == arm.Variant {
			variant = &enum.Variants[i]
			break
		}
	}
	if variant == nil {
		return
	}
	for i, bindName := range arm.Bindings {
		if bindName == "_" || i >= len(variant.Payload) {
			continue
		}
		env.Bind(bindName, variant.Payload[i])
	}
}
