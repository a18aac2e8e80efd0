package pg

import (
	"fmt"
	"strconv"

	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// LiteralValue converts an RDF literal to the Go value stored as a vertex
// property. Numeric and boolean XSD datatypes convert to native values;
// everything else keeps its lexical form. Conversion failures fall back to
// the lexical form rather than failing the run.
func LiteralValue(l rdf.Literal) any {
	switch l.Datatype {
	case vocab.XSDInteger, vocab.XSD + "int", vocab.XSD + "long", vocab.XSD + "short":
		if n, err := strconv.ParseInt(l.Value, 10, 64); err == nil {
			return n
		}
	case vocab.XSDDouble, vocab.XSD + "float", vocab.XSD + "decimal":
		if f, err := strconv.ParseFloat(l.Value, 64); err == nil {
			return f
		}
	case vocab.XSDBoolean:
		if b, err := strconv.ParseBool(l.Value); err == nil {
			return b
		}
	}
	return l.Value
}

// ValueLiteral is the inverse of LiteralValue: it converts a stored
// property value back to an RDF literal with the matching XSD datatype.
// Plain strings become xsd:string literals.
func ValueLiteral(v any) rdf.Literal {
	switch t := v.(type) {
	case string:
		return rdf.Literal{Value: t, Datatype: vocab.XSDString}
	case bool:
		return rdf.Literal{Value: strconv.FormatBool(t), Datatype: vocab.XSDBoolean}
	case int:
		return rdf.Literal{Value: strconv.Itoa(t), Datatype: vocab.XSDInteger}
	case int64:
		return rdf.Literal{Value: strconv.FormatInt(t, 10), Datatype: vocab.XSDInteger}
	case float64:
		// JSON decoding hands back float64 for every number; render
		// integral values as integers.
		if t == float64(int64(t)) {
			return rdf.Literal{Value: strconv.FormatInt(int64(t), 10), Datatype: vocab.XSDInteger}
		}
		return rdf.Literal{Value: strconv.FormatFloat(t, 'g', -1, 64), Datatype: vocab.XSDDouble}
	default:
		return rdf.Literal{Value: stringify(v), Datatype: vocab.XSDString}
	}
}

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}
