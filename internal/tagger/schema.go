//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tagger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	SCHEMAURL = "ayrac://tagger-response.schema.json"

	// empty token objects are allowed through: they are reported and skipped later, not rejected here
	RESPONSESCHEMA = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["tokens"],
	"properties": {
		"tokens": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			}
		}
	}
}`
)

var (
	responseschema = jsonschema.MustCompileString(SCHEMAURL, RESPONSESCHEMA)
)

// Validate - check the shape of a tagger response before it is decoded
func Validate(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var instance any
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := responseschema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}
