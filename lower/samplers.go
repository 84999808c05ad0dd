package lower

import (
	"fmt"

	"github.com/nikitalita/shaderconv/action"
	"github.com/nikitalita/shaderconv/ast"
)

// samplerNames is the fixed cross product of six filters × two repeat
// modes (spec §4.1 "Samplers"), grounded on
// ShaderCompiler::_get_sampler_name in shader_compiler.cpp.
var samplerNames = [12]string{
	"SAMPLER_NEAREST_CLAMP",
	"SAMPLER_LINEAR_CLAMP",
	"SAMPLER_NEAREST_WITH_MIPMAPS_CLAMP",
	"SAMPLER_LINEAR_WITH_MIPMAPS_CLAMP",
	"SAMPLER_NEAREST_WITH_MIPMAPS_ANISOTROPIC_CLAMP",
	"SAMPLER_LINEAR_WITH_MIPMAPS_ANISOTROPIC_CLAMP",
	"SAMPLER_NEAREST_REPEAT",
	"SAMPLER_LINEAR_REPEAT",
	"SAMPLER_NEAREST_WITH_MIPMAPS_REPEAT",
	"SAMPLER_LINEAR_WITH_MIPMAPS_REPEAT",
	"SAMPLER_NEAREST_WITH_MIPMAPS_ANISOTROPIC_REPEAT",
	"SAMPLER_LINEAR_WITH_MIPMAPS_ANISOTROPIC_REPEAT",
}

// filterIndex maps a resolved (non-default) Filter to its 0-based column in
// samplerNames.
func filterIndex(f ast.Filter) (int, error) {
	switch f {
	case ast.FilterNearest:
		return 0, nil
	case ast.FilterLinear:
		return 1, nil
	case ast.FilterNearestMipmap:
		return 2, nil
	case ast.FilterLinearMipmap:
		return 3, nil
	case ast.FilterNearestMipmapAniso:
		return 4, nil
	case ast.FilterLinearMipmapAniso:
		return 5, nil
	default:
		return 0, fmt.Errorf("unresolved or unknown filter %d", f)
	}
}

// samplerName picks a sampler object name by (filter, repeat), substituting
// the action's defaults for an unresolved ("default") filter or repeat. It
// fails (spec §4.1) if either remains default after substitution.
func samplerName(def *action.DefaultIdentifierActions, uniformName string, filter ast.Filter, repeat ast.Repeat) (string, error) {
	if custom, ok := def.CustomSamplers[uniformName]; ok {
		return custom, nil
	}
	if filter == ast.FilterDefault {
		filter = def.DefaultFilter
	}
	if repeat == ast.RepeatDefault {
		repeat = def.DefaultRepeat
	}
	if filter == ast.FilterDefault || repeat == ast.RepeatDefault {
		return "", invariant("samplerName", "sampler filter/repeat for %q is unresolved and no action default is set", uniformName)
	}
	idx, err := filterIndex(filter)
	if err != nil {
		return "", invariant("samplerName", "uniform %q: %v", uniformName, err)
	}
	if repeat == ast.RepeatEnable {
		idx += 6
	}
	return samplerNames[idx], nil
}
