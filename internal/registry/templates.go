package registry

import "github.com/tableguard/tableguard/internal/model"

// builtinTemplates returns the authoritative feature→table mapping. Every
// table name is a template resolved against the configured prefix; features
// whose structure references the account id by a local column use the
// %singular%_id placeholder so the column follows prefix changes.
func builtinTemplates() map[string][]model.TableSpec {
	return map[string][]model.TableSpec{
		"base": {
			{
				Method:  "accounts_table",
				Feature: "base",
				Name:    "%plural%",
				Kind:    model.KindPrimary,
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint, IsAutoIncrement: true},
					{Name: "status_id", Type: model.TypeInteger, Default: "1"},
					{Name: "email", Type: model.TypeEmail},
					{Name: "password_hash", Type: model.TypeString, Nullable: true},
				},
				PrimaryKey: []string{"id"},
				Indexes: []model.Index{
					{
						Name:     "%plural%_email_index",
						Columns:  []string{"email"},
						IsUnique: true,
						Where:    "status_id IN (1, 2)",
					},
				},
			},
		},
		"remember": {
			{
				Method:  "remember_table",
				Feature: "remember",
				Name:    "%singular%_remember_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "deadline", Type: model.TypeTimestamp},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"verify_account": {
			{
				Method:  "verify_account_table",
				Feature: "verify_account",
				Name:    "%singular%_verification_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "requested_at", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
					{Name: "email_last_sent", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"verify_login_change": {
			{
				Method:  "verify_login_change_table",
				Feature: "verify_login_change",
				Name:    "%singular%_login_change_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "login", Type: model.TypeString},
					{Name: "deadline", Type: model.TypeTimestamp},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"reset_password": {
			{
				Method:  "reset_password_table",
				Feature: "reset_password",
				Name:    "%singular%_password_reset_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "deadline", Type: model.TypeTimestamp},
					{Name: "email_last_sent", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"email_auth": {
			{
				Method:  "email_auth_table",
				Feature: "email_auth",
				Name:    "%singular%_email_auth_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "deadline", Type: model.TypeTimestamp},
					{Name: "email_last_sent", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"otp": {
			{
				Method:  "otp_keys_table",
				Feature: "otp",
				Name:    "%singular%_otp_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "num_failures", Type: model.TypeInteger, Default: "0"},
					{Name: "last_use", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"otp_unlock": {
			{
				Method:  "otp_unlock_table",
				Feature: "otp_unlock",
				Name:    "%singular%_otp_unlocks",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "num_successes", Type: model.TypeInteger, Default: "1"},
					{Name: "next_auth_attempt_after", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"sms_codes": {
			{
				Method:  "sms_codes_table",
				Feature: "sms_codes",
				Name:    "%singular%_sms_codes",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "phone_number", Type: model.TypeString},
					{Name: "num_failures", Type: model.TypeInteger, Nullable: true},
					{Name: "code", Type: model.TypeString, Nullable: true},
					{Name: "code_issued_at", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"recovery_codes": {
			{
				Method:  "recovery_codes_table",
				Feature: "recovery_codes",
				Name:    "%singular%_recovery_codes",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "code", Type: model.TypeString},
				},
				PrimaryKey:  []string{"id", "code"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"webauthn": {
			{
				Method:  "webauthn_user_ids_table",
				Feature: "webauthn",
				Name:    "%singular%_webauthn_user_ids",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "webauthn_id", Type: model.TypeString},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
			{
				Method:  "webauthn_keys_table",
				Feature: "webauthn",
				Name:    "%singular%_webauthn_keys",
				Columns: []model.Column{
					{Name: "%singular%_id", Type: model.TypeBigint},
					{Name: "webauthn_id", Type: model.TypeString},
					{Name: "public_key", Type: model.TypeText},
					{Name: "sign_count", Type: model.TypeInteger},
					{Name: "last_use", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"%singular%_id", "webauthn_id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("%singular%_id")},
			},
		},
		"lockout": {
			{
				Method:  "account_login_failures_table",
				Feature: "lockout",
				Name:    "%singular%_login_failures",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "number", Type: model.TypeInteger, Default: "1"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
			{
				Method:  "account_lockouts_table",
				Feature: "lockout",
				Name:    "%singular%_lockouts",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "deadline", Type: model.TypeTimestamp},
					{Name: "email_last_sent", Type: model.TypeTimestamp, Nullable: true},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"active_sessions": {
			{
				Method:  "active_sessions_table",
				Feature: "active_sessions",
				Name:    "%singular%_active_session_keys",
				Columns: []model.Column{
					{Name: "%singular%_id", Type: model.TypeBigint},
					{Name: "session_id", Type: model.TypeString},
					{Name: "created_at", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
					{Name: "last_use", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"%singular%_id", "session_id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("%singular%_id")},
			},
		},
		"account_expiration": {
			{
				Method:  "account_activity_table",
				Feature: "account_expiration",
				Name:    "%singular%_activity_times",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "last_activity_at", Type: model.TypeTimestamp},
					{Name: "last_login_at", Type: model.TypeTimestamp},
					{Name: "expired_at", Type: model.TypeTimestamp, Nullable: true},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"password_expiration": {
			{
				Method:  "password_expiration_table",
				Feature: "password_expiration",
				Name:    "%singular%_password_change_times",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "changed_at", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"single_session": {
			{
				Method:  "single_session_table",
				Feature: "single_session",
				Name:    "%singular%_session_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("id")},
			},
		},
		"audit_logging": {
			{
				Method:  "audit_logging_table",
				Feature: "audit_logging",
				Name:    "%singular%_authentication_audit_logs",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint, IsAutoIncrement: true},
					{Name: "%singular%_id", Type: model.TypeBigint},
					{Name: "at", Type: model.TypeTimestamp, Default: "CURRENT_TIMESTAMP"},
					{Name: "message", Type: model.TypeText},
					{Name: "metadata", Type: model.TypeJSON, Nullable: true},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("%singular%_id")},
				Indexes: []model.Index{
					{
						Name:    "audit_%singular%_at_idx",
						Columns: []string{"%singular%_id", "at"},
					},
				},
			},
		},
		"disallow_password_reuse": {
			{
				Method:  "previous_password_hash_table",
				Feature: "disallow_password_reuse",
				Name:    "%singular%_previous_password_hashes",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint, IsAutoIncrement: true},
					{Name: "%singular%_id", Type: model.TypeBigint, Nullable: true},
					{Name: "password_hash", Type: model.TypeString},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("%singular%_id")},
			},
		},
		"jwt_refresh": {
			{
				Method:  "jwt_refresh_token_table",
				Feature: "jwt_refresh",
				Name:    "%singular%_jwt_refresh_keys",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeBigint, IsAutoIncrement: true},
					{Name: "%singular%_id", Type: model.TypeBigint},
					{Name: "key", Type: model.TypeString},
					{Name: "deadline", Type: model.TypeTimestamp},
				},
				PrimaryKey:  []string{"id"},
				ForeignKeys: []model.ForeignKey{accountIDKey("%singular%_id")},
				Indexes: []model.Index{
					{
						Name:    "%singular%_jwt_rk_%singular%_id_idx",
						Columns: []string{"%singular%_id"},
					},
				},
			},
		},
	}
}

// accountIDKey builds the foreign key every feature table declares against
// the primary account table. The local column name is an explicit argument
// because several features override it (e.g. %singular%_id instead of id).
func accountIDKey(column string) model.ForeignKey {
	return model.ForeignKey{
		Column:           column,
		ReferencedTable:  "%plural%",
		ReferencedColumn: "id",
		OnDelete:         "CASCADE",
	}
}
