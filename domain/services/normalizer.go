package services

import (
	"strings"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// nameSeparators in priority order: a hyphen anywhere wins over underscores
var nameSeparators = []string{"-", "_"}

// Normalize turns a data row into a record of host
func Normalize(host string, row entities.Row) entities.VlanRecord {
	name, subnet := SplitName(row.NameToken)
	return entities.VlanRecord{
		Host:   host,
		VlanID: row.VlanIDToken,
		Name:   name,
		Subnet: subnet,
	}
}

// SplitName splits a compound name token at the last hyphen, or at the last
// underscore when there is no hyphen. Without a separator the whole token is
// the name and the subnet is empty.
func SplitName(token string) (name, subnet string) {
	for _, sep := range nameSeparators {
		if i := strings.LastIndex(token, sep); i >= 0 {
			return token[:i], token[i+len(sep):]
		}
	}
	return token, ""
}
