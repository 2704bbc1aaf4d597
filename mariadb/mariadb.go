// Package mariadb provides the MariaDB platform for sqlkit. MariaDB shares
// MySQL's quoting, placeholders and LIMIT/OFFSET rules, including the
// sentinel LIMIT for OFFSET-only queries.
package mariadb

import "github.com/zoobzio/sqlkit/mysql"

// New creates a MariaDB platform.
func New(opts ...mysql.Option) *mysql.Platform {
	return mysql.New(append([]mysql.Option{mysql.WithName("mariadb")}, opts...)...)
}
