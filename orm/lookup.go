// Package orm wraps gorm lookups in the fetch-or-raise / fetch-or-none
// shapes the controller helpers build on. Not-found conditions surface as
// API errors; every other database failure propagates unchanged.
package orm

import (
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"github.com/warin-th/ctrlkit/apierror"
)

// GetObjectOrError loads the first record matching conds into dest. A miss
// becomes an apierror.NotFound carrying errMessage (or a derived default).
func GetObjectOrError(db *gorm.DB, dest any, errMessage string, conds ...any) error {
	if db == nil {
		return errors.New("orm: nil database handle")
	}
	err := db.First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if errMessage == "" {
			errMessage = fmt.Sprintf("%s matching the given query does not exist.", modelName(dest))
		}
		return apierror.NotFound(errMessage)
	}
	return err
}

// GetObjectOrNone loads the first record matching conds into dest and
// reports whether one was found. A miss is not an error.
func GetObjectOrNone(db *gorm.DB, dest any, conds ...any) (bool, error) {
	if db == nil {
		return false, errors.New("orm: nil database handle")
	}
	err := db.First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func modelName(dest any) string {
	t := reflect.TypeOf(dest)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "Object"
	}
	return t.Name()
}
