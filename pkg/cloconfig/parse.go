package cloconfig

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Parse reads an instrument configuration document of the form:
//
//	{
//	  "instruments": [
//	    {"name": "quiz1", "mode": "keyed", "weight": 10,
//	     "clos": {"CLO1": [1, 2], "CLO2": [3]}}
//	  ]
//	}
//
// Object key order in "clos" is preserved as the CLO insertion order so
// repeated runs report CLOs identically.
func Parse(data []byte) ([]Instrument, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ConfigurationError{Reason: "instrument configuration is not valid JSON"}
	}
	doc := gjson.ParseBytes(data)
	arr := doc.Get("instruments")
	if !arr.Exists() || !arr.IsArray() {
		return nil, &ConfigurationError{Reason: `missing "instruments" array`}
	}

	var out []Instrument
	var parseErr error
	arr.ForEach(func(_, item gjson.Result) bool {
		inst := Instrument{
			Name:   item.Get("name").String(),
			Mode:   Mode(item.Get("mode").String()),
			Weight: item.Get("weight").Float(),
		}
		item.Get("clos").ForEach(func(clo, questions gjson.Result) bool {
			cq := CLOQuestions{CLO: clo.String()}
			questions.ForEach(func(_, q gjson.Result) bool {
				cq.Questions = append(cq.Questions, int(q.Int()))
				return true
			})
			inst.CLOs = append(inst.CLOs, cq)
			return true
		})
		if err := inst.Validate(0); err != nil {
			parseErr = errors.Wrapf(err, "instrument %q", inst.Name)
			return false
		}
		out = append(out, inst)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(out) == 0 {
		return nil, &ConfigurationError{Reason: "no instruments configured"}
	}
	return out, nil
}

// ParseGroupMap reads the outcome-group document:
//
//	{"groups": {"knowledge": ["CLO1", "CLO2"], "skills": ["CLO3"]}}
func ParseGroupMap(data []byte) (GroupMap, error) {
	if !gjson.ValidBytes(data) {
		return GroupMap{}, &ConfigurationError{Reason: "group map is not valid JSON"}
	}
	obj := gjson.ParseBytes(data).Get("groups")
	if !obj.Exists() {
		return GroupMap{}, &ConfigurationError{Reason: `missing "groups" object`}
	}
	var gm GroupMap
	obj.ForEach(func(name, clos gjson.Result) bool {
		g := Group{Name: name.String()}
		clos.ForEach(func(_, c gjson.Result) bool {
			g.CLOs = append(g.CLOs, c.String())
			return true
		})
		gm.Groups = append(gm.Groups, g)
		return true
	})
	if len(gm.Groups) == 0 {
		return GroupMap{}, &ConfigurationError{Reason: "group map is empty"}
	}
	return gm, nil
}
