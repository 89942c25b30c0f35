package repository

import "eventmi/metrics"

var queryDuration = metrics.QueryDuration
