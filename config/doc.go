/*
Package config loads columnorm settings.

Settings come from, in increasing priority: built-in defaults, a YAML file,
.env files and the process environment.

	region: eu-west-1
	tablePrefix: prod_
	logLevel: info
	fetch:
	  maxConcurrency: 8
	  maxRetries: 3
	  retryBackoff: 200ms

Environment variables: AWS_ACCESS_KEY, AWS_SECRET_KEY, AWS_REGION,
COLUMNORM_ENDPOINT, COLUMNORM_TABLE_PREFIX, COLUMNORM_LOG_LEVEL.
*/
package config
